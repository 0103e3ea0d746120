// Command logindiag probes which request encoding a deployment's login
// endpoint accepts. It posts the supplied credentials once per candidate
// encoding and reports the outcome of each attempt.
//
// This is an offline diagnostic for confirming the API_LOGIN_ENCODING
// value against a staging backend. It is deliberately not part of the
// gateway: production code uses exactly one declared encoding and never
// probes a live endpoint.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const bodySnippetLimit = 512

func main() {
	base := flag.String("base", "http://localhost:8000", "backend base URL")
	username := flag.String("username", "", "login username")
	password := flag.String("password", "", "login password")
	timeout := flag.Duration("timeout", 10*time.Second, "per-attempt timeout")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: logindiag -base <url> -username <u> -password <p>")
		os.Exit(2)
	}

	target := strings.TrimRight(*base, "/") + "/auth/login"
	client := &http.Client{Timeout: *timeout}

	attempts := []struct {
		name  string
		build func(u, p string) (io.Reader, string, error)
	}{
		{"form-urlencoded", buildForm},
		{"json", buildJSON},
		{"multipart", buildMultipart},
	}

	exitCode := 1
	for _, attempt := range attempts {
		status, snippet, err := post(client, target, *username, *password, attempt.build)
		switch {
		case err != nil:
			fmt.Printf("%-16s error: %v\n", attempt.name, err)
		case status >= 200 && status < 300:
			fmt.Printf("%-16s ACCEPTED (%d): %s\n", attempt.name, status, snippet)
			exitCode = 0
		default:
			fmt.Printf("%-16s rejected (%d): %s\n", attempt.name, status, snippet)
		}
	}
	os.Exit(exitCode)
}

func post(
	client *http.Client,
	target, username, password string,
	build func(u, p string) (io.Reader, string, error),
) (int, string, error) {
	body, contentType, err := build(username, password)
	if err != nil {
		return 0, "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	snippet, err := io.ReadAll(io.LimitReader(resp.Body, bodySnippetLimit))
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, strings.TrimSpace(string(snippet)), nil
}

func buildForm(username, password string) (io.Reader, string, error) {
	form := url.Values{"username": {username}, "password": {password}}
	return strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil
}

func buildJSON(username, password string) (io.Reader, string, error) {
	encoded, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(encoded), "application/json", nil
}

func buildMultipart(username, password string) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("username", username); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("password", password); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}
