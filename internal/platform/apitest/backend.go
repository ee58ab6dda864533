// Package apitest runs an in-process certificate backend for tests. It
// reproduces the real backend's JSON surface, including its mixed
// {"error": …} / {"message": …} failure shapes and mock anchoring.
package apitest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type institution struct {
	ID       int
	Name     string
	Password string
}

type certificate struct {
	StudentName string
	RollNumber  string
	TxHash      string
}

// Backend is an in-memory stand-in for the certificate backend.
type Backend struct {
	Secret []byte

	mu           sync.Mutex
	institutions map[string]*institution
	certificates map[string]*certificate
	nextID       int

	failStatus int
	failBody   gin.H

	server *httptest.Server
}

// NewServer starts a fake backend and tears it down with the test.
func NewServer(t *testing.T) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		Secret:       []byte("apitest-secret"),
		institutions: make(map[string]*institution),
		certificates: make(map[string]*certificate),
	}
	b.server = httptest.NewServer(b.router())
	t.Cleanup(b.server.Close)
	return b
}

// URL returns the backend base URL.
func (b *Backend) URL() string { return b.server.URL }

// FailNextWith makes the next request answer with the given status and
// body, then resets. Used to exercise the failure-shape matrix.
func (b *Backend) FailNextWith(status int, body gin.H) {
	b.mu.Lock()
	b.failStatus = status
	b.failBody = body
	b.mu.Unlock()
}

// RegisterInstitution seeds an account directly.
func (b *Backend) RegisterInstitution(name, email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.institutions[email] = &institution{ID: b.nextID, Name: name, Password: password}
}

// CertificateCount reports how many certificates were accepted.
func (b *Backend) CertificateCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.certificates)
}

func (b *Backend) router() *gin.Engine {
	r := gin.New()
	r.Use(b.failureInjector())

	r.POST("/api/institution/register", b.handleRegister)
	r.POST("/api/institution/login", b.handleLogin)
	r.POST("/api/certificate/add", b.requireToken, b.handleAddCertificate)
	r.GET("/api/certificate/verify/:hash", b.handleVerify)
	return r
}

func (b *Backend) failureInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		b.mu.Lock()
		status, body := b.failStatus, b.failBody
		b.failStatus, b.failBody = 0, nil
		b.mu.Unlock()
		if status != 0 {
			c.AbortWithStatusJSON(status, body)
			return
		}
		c.Next()
	}
}

func (b *Backend) handleRegister(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.institutions[req.Email]; exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Institution with this email already exists."})
		return
	}
	b.nextID++
	b.institutions[req.Email] = &institution{ID: b.nextID, Name: req.Name, Password: req.Password}
	c.JSON(http.StatusCreated, gin.H{"message": "Institution registered successfully."})
}

func (b *Backend) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	b.mu.Lock()
	inst, ok := b.institutions[req.Email]
	b.mu.Unlock()
	if !ok || inst.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	claims := jwt.MapClaims{
		"institution_id": inst.ID,
		"exp":            time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.Secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (b *Backend) requireToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is missing or invalid."})
		return
	}
	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return b.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is missing or invalid."})
		return
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	if id, ok := claims["institution_id"].(float64); ok {
		c.Set("institution_id", int(id))
	}
	c.Next()
}

func (b *Backend) handleAddCertificate(c *gin.Context) {
	var req struct {
		StudentName string `json:"student_name"`
		RollNumber  string `json:"roll_number"`
		CourseName  string `json:"course_name"`
		Grade       string `json:"grade"`
		IssueDate   string `json:"issue_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}
	if req.StudentName == "" || req.RollNumber == "" || req.CourseName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required certificate fields."})
		return
	}

	instID := c.GetInt("institution_id")
	certHash := sha256Hex(fmt.Sprintf("%s|%s|%s|%s|%s",
		req.StudentName, req.RollNumber, req.CourseName, req.Grade, req.IssueDate))
	txHash := mockTxHash(certHash, instID, b.Secret)

	b.mu.Lock()
	b.certificates[certHash] = &certificate{
		StudentName: req.StudentName,
		RollNumber:  req.RollNumber,
		TxHash:      txHash,
	}
	b.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"message":            "Certificate added successfully.",
		"certificate_hash":   certHash,
		"blockchain_tx_hash": txHash,
	})
}

func (b *Backend) handleVerify(c *gin.Context) {
	hash := c.Param("hash")

	b.mu.Lock()
	cert, ok := b.certificates[hash]
	b.mu.Unlock()

	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"verified": false,
			"message":  "Certificate not found on blockchain",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"verified":     true,
		"tx_hash":      cert.TxHash,
		"block_number": 12345678,
		"message":      "Certificate verified on blockchain",
	})
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// mockTxHash mirrors the backend's deterministic demo anchoring.
func mockTxHash(certHash string, institutionID int, secret []byte) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s_%d_%s", certHash, institutionID, secret)))
	return "0x" + hex.EncodeToString(sum[:])[:40]
}
