package i18n_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/geocasagroup/portal/pkg/i18n"
)

func TestTranslator(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Translator Suite")
}

var _ = Describe("Translator", func() {
	var translator *i18n.Translator

	BeforeEach(func() {
		var err error
		translator, err = i18n.NewTranslator()
		Expect(err).NotTo(HaveOccurred())
	})

	It("should serve french messages", func() {
		Expect(translator.T("fr", "personnel.registered")).To(Equal("Personnel enregistré avec succès"))
	})

	It("should serve english messages", func() {
		Expect(translator.T("en", "personnel.registered")).To(Equal("Personnel registered successfully"))
	})

	It("should fall back to french for unknown languages", func() {
		Expect(translator.T("de", "assignment.min_selection")).To(Equal("Au moins une division ou un bureau est requis"))
		Expect(translator.T("", "assignment.min_selection")).To(Equal("Au moins une division ou un bureau est requis"))
	})

	It("should return the key for missing messages", func() {
		Expect(translator.T("fr", "nonexistent.key")).To(Equal("nonexistent.key"))
	})
})
