package api

// RegisterRequest carries the institution registration fields.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries the institution credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the issued bearer token. The client treats the
// token as opaque.
type LoginResponse struct {
	Token string `json:"token"`
}

// CertificateRequest carries one certificate record.
type CertificateRequest struct {
	StudentName string `json:"student_name"`
	RollNumber  string `json:"roll_number"`
	CourseName  string `json:"course_name"`
	Grade       string `json:"grade"`
	IssueDate   string `json:"issue_date"`
}

// CertificateResponse is the backend's acknowledgement; the transaction
// hash is present only when the record was anchored on chain.
type CertificateResponse struct {
	Message          string `json:"message,omitempty"`
	CertificateHash  string `json:"certificate_hash,omitempty"`
	BlockchainTxHash string `json:"blockchain_tx_hash,omitempty"`
}

// VerifyResponse reports whether a certificate hash is anchored.
type VerifyResponse struct {
	Verified    bool   `json:"verified"`
	TxHash      string `json:"tx_hash,omitempty"`
	BlockNumber int64  `json:"block_number,omitempty"`
	Message     string `json:"message,omitempty"`
}
