package memory_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/geocasagroup/portal/internal/session"
	"github.com/geocasagroup/portal/internal/session/memory"
)

func TestMemoryStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Memory Store Suite")
}

var _ = Describe("Memory Store", func() {
	var ctx context.Context

	identity := &session.Identity{
		ID:    "7",
		Name:  "Claire Dupont",
		Email: "claire@geocasagroup.com",
	}

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("should round trip an identity through the JSON boundary", func() {
		store := memory.NewStore(time.Hour)
		Expect(store.Save(ctx, identity)).To(Succeed())

		loaded, err := store.Load(ctx, "7")
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).NotTo(BeNil())
		Expect(loaded.Email).To(Equal("claire@geocasagroup.com"))
	})

	It("should return nil without error for unknown ids", func() {
		store := memory.NewStore(time.Hour)
		loaded, err := store.Load(ctx, "999")
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(BeNil())
	})

	It("should expire entries after the TTL", func() {
		store := memory.NewStore(10 * time.Millisecond)
		Expect(store.Save(ctx, identity)).To(Succeed())

		Eventually(func() *session.Identity {
			loaded, _ := store.Load(ctx, "7")
			return loaded
		}).Should(BeNil())
	})

	It("should delete idempotently", func() {
		store := memory.NewStore(time.Hour)
		Expect(store.Save(ctx, identity)).To(Succeed())

		Expect(store.Delete(ctx, "7")).To(Succeed())
		Expect(store.Delete(ctx, "7")).To(Succeed())

		loaded, err := store.Load(ctx, "7")
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(BeNil())
	})

	It("should sweep expired entries and keep live ones", func() {
		store := memory.NewStore(10 * time.Millisecond)
		Expect(store.Save(ctx, identity)).To(Succeed())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		stop := store.StartSweeper(5*time.Millisecond, logger)
		defer stop()

		Eventually(func() *session.Identity {
			loaded, _ := store.Load(ctx, "7")
			return loaded
		}).Should(BeNil())

		// stop twice to prove the stop function is safe to reuse
		stop()
		stop()
	})
})
