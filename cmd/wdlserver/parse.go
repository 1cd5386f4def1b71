package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// parseJSON decodes req's body into v, which must be a pointer to a type.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer req.Body.Close()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return fmt.Errorf("malformed JSON in request: %w", err)
	}
	return nil
}
