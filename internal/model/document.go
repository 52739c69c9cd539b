package model

// Document is a file record as listed by /my-documents and /shared-documents
type Document struct {
	DocumentID      string `json:"documentId"`
	IPFSHash        string `json:"ipfsHash"`
	Owner           string `json:"owner"`
	Timestamp       int64  `json:"timestamp"`
	FileName        string `json:"fileName"`
	FileSize        int64  `json:"fileSize"`
	IsActive        bool   `json:"isActive"`
	DocumentType    string `json:"documentType"`
	TransactionHash string `json:"transactionHash,omitempty"`
	BlockNumber     int64  `json:"blockNumber,omitempty"`
	IPFSURL         string `json:"ipfsUrl"`
}

// DocumentsResponse represents response for GET /my-documents and /shared-documents
type DocumentsResponse struct {
	Envelope
	Documents []Document `json:"documents"`
	Count     int        `json:"count"`
}
