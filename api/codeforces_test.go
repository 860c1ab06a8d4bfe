package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kevinchua6/cp-buddies/constants"
	"github.com/kevinchua6/cp-buddies/errors"
)

func TestNewCodeforcesClient(t *testing.T) {
	client := NewCodeforcesClient("")

	if client == nil {
		t.Fatal("Expected non-nil client")
	}

	if client.baseURL != constants.CodeforcesBaseURL {
		t.Errorf("Expected base URL '%s', got '%s'", constants.CodeforcesBaseURL, client.baseURL)
	}

	if client.client == nil {
		t.Error("Expected non-nil HTTP client")
	}
}

func TestNewCodeforcesClient_BaseURLOverride(t *testing.T) {
	client := NewCodeforcesClient("http://localhost:9999")

	if client.baseURL != "http://localhost:9999" {
		t.Errorf("Expected overridden base URL, got '%s'", client.baseURL)
	}
}

func TestCodeforcesClient_GetRecentSubmissions_Success(t *testing.T) {
	// Mock 서버 생성
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user.status" {
			t.Errorf("Expected path '/user.status', got '%s'", r.URL.Path)
		}

		handle := r.URL.Query().Get("handle")
		if handle != "tourist" {
			t.Errorf("Expected handle 'tourist', got '%s'", handle)
		}

		count := r.URL.Query().Get("count")
		if count != fmt.Sprintf("%d", constants.CodeforcesSubmissionCount) {
			t.Errorf("Expected count '%d', got '%s'", constants.CodeforcesSubmissionCount, count)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"status": "OK",
			"result": [
				{
					"id": 1,
					"creationTimeSeconds": 1700000000,
					"problem": {"contestId": 1900, "index": "A", "name": "Watermelon", "tags": ["math", "brute force"]},
					"verdict": "OK"
				},
				{
					"id": 2,
					"creationTimeSeconds": 1700000100,
					"problem": {"contestId": 1900, "index": "B", "name": "Theatre Square", "tags": ["math"]},
					"verdict": "WRONG_ANSWER"
				}
			]
		}`))
	}))
	defer server.Close()

	client := &CodeforcesClient{
		client:  &http.Client{Timeout: constants.TestAPITimeout},
		baseURL: server.URL,
	}

	submissions, err := client.GetRecentSubmissions(context.Background(), "tourist")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(submissions) != 2 {
		t.Fatalf("Expected 2 submissions, got %d", len(submissions))
	}

	if submissions[0].Problem.Name != "Watermelon" {
		t.Errorf("Expected problem name 'Watermelon', got '%s'", submissions[0].Problem.Name)
	}

	if len(submissions[0].Problem.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %d", len(submissions[0].Problem.Tags))
	}

	if submissions[1].CreationTimeSeconds != 1700000100 {
		t.Errorf("Expected creation time 1700000100, got %d", submissions[1].CreationTimeSeconds)
	}
}

func TestCodeforcesClient_GetRecentSubmissions_NotFound(t *testing.T) {
	// Mock 서버 - status "FAILED" 응답 (존재하지 않는 핸들)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "FAILED", "comment": "handle: User with handle ghost not found"}`))
	}))
	defer server.Close()

	client := &CodeforcesClient{
		client:  &http.Client{Timeout: constants.TestAPITimeout},
		baseURL: server.URL,
	}

	submissions, err := client.GetRecentSubmissions(context.Background(), "ghost")

	if err == nil {
		t.Fatal("Expected error for non-existent handle")
	}

	if submissions != nil {
		t.Error("Expected nil submissions on error")
	}

	if !errors.IsNotFound(err) {
		t.Errorf("Expected not-found error, got: %v", err)
	}
}

func TestCodeforcesClient_GetRecentSubmissions_BadStatus(t *testing.T) {
	// OK도 FAILED도 아닌 상태는 업스트림 장애로 취급되어야 합니다
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "MAINTENANCE"}`))
	}))
	defer server.Close()

	client := &CodeforcesClient{
		client:  &http.Client{Timeout: constants.TestAPITimeout},
		baseURL: server.URL,
	}

	_, err := client.GetRecentSubmissions(context.Background(), "tourist")

	if err == nil {
		t.Fatal("Expected error for bad status")
	}

	if !errors.IsUpstream(err) {
		t.Errorf("Expected upstream error, got: %v", err)
	}
}

func TestCodeforcesClient_GetRecentSubmissions_EmptyResult(t *testing.T) {
	// 제출이 없는 핸들도 정상 처리되어야 합니다
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "OK", "result": []}`))
	}))
	defer server.Close()

	client := &CodeforcesClient{
		client:  &http.Client{Timeout: constants.TestAPITimeout},
		baseURL: server.URL,
	}

	submissions, err := client.GetRecentSubmissions(context.Background(), "newbie")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(submissions) != 0 {
		t.Errorf("Expected 0 submissions, got %d", len(submissions))
	}
}

func TestCodeforcesClient_GetRecentSubmissions_InvalidHandle(t *testing.T) {
	client := NewCodeforcesClient("")

	_, err := client.GetRecentSubmissions(context.Background(), "")

	if err == nil {
		t.Error("Expected validation error for empty handle")
	}
}
