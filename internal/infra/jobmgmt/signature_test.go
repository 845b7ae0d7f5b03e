package jobmgmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalStringByteOrder(t *testing.T) {
	got := canonicalString("POST", "/jobs", "application/json", "token-123", "1700000000", "zone=jobs")
	assert.Equal(t, "POST|/jobs|application/json|token-123|1700000000|zone=jobs", got)
}

func TestSignGoldenVector(t *testing.T) {
	// Fixed vector: the remote end recomputes this exact digest, so any
	// change here is a wire-format break.
	canonical := canonicalString("POST", "/jobs", "application/json", "token-123", "1700000000", "zone=jobs")
	got := sign("super-secret", canonical)
	assert.Equal(t,
		"9acf2f7bbd934871fb3b9df2a44f1be0a7a586051c201fd2fe8cb9e335304c82"+
			"2f8bccb8132dba7164bed5b4e4ea9d8c0fa534bcf122dc87204bb5e8b1255478",
		got)
}

func TestSignEmptyBody(t *testing.T) {
	withBody := sign("s", canonicalString("GET", "/jobs", "application/json", "t", "1", "x"))
	withoutBody := sign("s", canonicalString("GET", "/jobs", "application/json", "t", "1", ""))
	assert.NotEqual(t, withBody, withoutBody)
}
