package domain

import "time"

// Document is a knowledge-base document as listed by the document manager.
type Document struct {
	ID                int64            `json:"id"`
	KnowledgeBaseName string           `json:"knowledgeBaseName"`
	FileName          string           `json:"fileName"`
	Status            ProcessingStatus `json:"status"`
	CreatedAt         *time.Time       `json:"createTime"`
	UpdatedAt         *time.Time       `json:"updateTime"`
}

// Descriptor returns the status descriptor for the document.
func (d *Document) Descriptor() StatusDescriptor {
	return Describe(d.Status)
}
