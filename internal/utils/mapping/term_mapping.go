package mapping

import (
	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/SscSPs/blog_backend/internal/models"
)

// ToModelTerm converts a domain Term to a model Term
func ToModelTerm(d domain.Term) models.Term {
	return models.Term{
		TermID:      d.TermID,
		Name:        d.Name,
		Slug:        d.Slug,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTerm converts a model Term to a domain Term
func ToDomainTerm(m models.Term) domain.Term {
	return domain.Term{
		TermID:      m.TermID,
		Name:        m.Name,
		Slug:        m.Slug,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTermSlice converts a slice of model Terms to a slice of domain Terms
func ToDomainTermSlice(ms []models.Term) []domain.Term {
	ds := make([]domain.Term, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTerm(m)
	}
	return ds
}
