package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/geocasagroup/portal/internal/catalog"
)

var _ = Describe("Catalog Handler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		handler := catalog.NewHandler()
		router = chi.NewRouter()
		router.Get("/catalog/departments", handler.ListDepartments)
		router.Get("/catalog/departments/{id}", handler.GetDepartment)
		router.Get("/catalog/divisions", handler.ListDivisions)
		router.Get("/catalog/divisions/{id}", handler.GetDivision)
	})

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	Describe("GET /catalog/departments/{id}", func() {
		It("should serve a known department", func() {
			rec := get("/catalog/departments/financing")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var body struct {
				Department catalog.Department `json:"department"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Department.ID).To(Equal("financing"))
		})

		It("should fall back to the default content for unknown ids", func() {
			rec := get("/catalog/departments/nonexistent")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var body struct {
				Department catalog.Department `json:"department"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Department.ID).To(Equal("general"))
		})
	})

	Describe("GET /catalog/divisions/{id}", func() {
		It("should serve a known division with its offices", func() {
			rec := get("/catalog/divisions/documentation")
			Expect(rec.Code).To(Equal(http.StatusOK))

			var body struct {
				Division catalog.Division `json:"division"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Division.Offices).To(HaveLen(1))
		})

		It("should return not-found for unknown ids", func() {
			rec := get("/catalog/divisions/nonexistent")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("list endpoints", func() {
		It("should serve the full catalog", func() {
			Expect(get("/catalog/departments").Code).To(Equal(http.StatusOK))
			Expect(get("/catalog/divisions").Code).To(Equal(http.StatusOK))
		})
	})
})
