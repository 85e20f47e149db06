//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/portfolio/internal/contact"
	"github.com/2beens/portfolio/pkg"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) postContact(ctx context.Context, body []byte) (int, pkg.JSONStatus) {
	t := s.T()

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/contact", serverEndpoint), bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var status pkg.JSONStatus
	require.NoError(t, json.Unmarshal(respBytes, &status), string(respBytes))
	return resp.StatusCode, status
}

func (s *IntegrationTestSuite) TestContact() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()

	body, err := json.Marshal(contact.Submission{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Subject: gofakeit.Sentence(3),
		Message: gofakeit.Sentence(12),
	})
	require.NoError(t, err)

	code, status := s.postContact(ctx, body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, pkg.JSONStatus{Success: true, Message: "Message received successfully"}, status)

	code, status = s.postContact(ctx, []byte(`{"name":"Alice","email":"a@b.com","subject":"Hi"}`))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "All fields are required", status.Message)

	code, status = s.postContact(ctx, []byte(`{"name":"Alice","email":"a b@c.com","subject":"Hi","message":"Hello"}`))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid email address", status.Message)

	code, status = s.postContact(ctx, []byte(`{"name":`))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, pkg.JSONStatus{Success: false, Message: "Internal server error"}, status)
}
