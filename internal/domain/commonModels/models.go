package commonModels

import "time"

type Document struct {
	Id                  string    `json:"source_doc_id"`
	Name                string    `json:"doc_name"`
	Path                string    `json:"path,omitempty"`
	LastIngestTimestamp time.Time `json:"ingested_at"`
	ContentType         DocType   `json:"content_type"`
	PageCount           int       `json:"page_count"`
	ChunkCount          int       `json:"chunk_count"`
}

type DocChunk struct {
	Doc                Document
	ChunkId            string `json:"chunk_id"`
	Chunk              string `json:"content"`
	PageNum            int    `json:"page_num"`
	ChunkPageOrder     int    `json:"chunk_order"`
	EmbeddingDimension string `json:"embeddingModel"`
}

// SearchMatch is one chunk returned by a similarity search.
type SearchMatch struct {
	Content string  `json:"content"`
	DocName string  `json:"doc_name"`
	PageNum int     `json:"page_num"`
	ChunkId string  `json:"chunk_id"`
	Score   float32 `json:"score"`
}

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"
