package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/apex-meme-lord/ewsclient/ews"
)

// MockService is a mock implementation of the Service interface for testing
type MockService struct {
	ListMessagesFunc  func(ctx context.Context, folder, delegateFor string, limit, offset int) (*ListMessagesResponse, error)
	GetMessageFunc    func(ctx context.Context, itemID string) (*MessageDetailResponse, error)
	CreateMessageFunc func(ctx context.Context, req *CreateMessageRequest) (*MessageDetailResponse, error)
	SendMessageFunc   func(ctx context.Context, itemID string) error
	DeleteMessageFunc func(ctx context.Context, itemID string) error
	MoveMessageFunc   func(ctx context.Context, itemID, folderID string) error
	CopyMessageFunc   func(ctx context.Context, itemID, folderID string) (*MessageSummary, error)
}

func (m *MockService) ListMessages(ctx context.Context, folder, delegateFor string, limit, offset int) (*ListMessagesResponse, error) {
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx, folder, delegateFor, limit, offset)
	}
	return nil, nil
}

func (m *MockService) GetMessage(ctx context.Context, itemID string) (*MessageDetailResponse, error) {
	if m.GetMessageFunc != nil {
		return m.GetMessageFunc(ctx, itemID)
	}
	return nil, nil
}

func (m *MockService) CreateMessage(ctx context.Context, req *CreateMessageRequest) (*MessageDetailResponse, error) {
	if m.CreateMessageFunc != nil {
		return m.CreateMessageFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockService) SendMessage(ctx context.Context, itemID string) error {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, itemID)
	}
	return nil
}

func (m *MockService) DeleteMessage(ctx context.Context, itemID string) error {
	if m.DeleteMessageFunc != nil {
		return m.DeleteMessageFunc(ctx, itemID)
	}
	return nil
}

func (m *MockService) MoveMessage(ctx context.Context, itemID, folderID string) error {
	if m.MoveMessageFunc != nil {
		return m.MoveMessageFunc(ctx, itemID, folderID)
	}
	return nil
}

func (m *MockService) CopyMessage(ctx context.Context, itemID, folderID string) (*MessageSummary, error) {
	if m.CopyMessageFunc != nil {
		return m.CopyMessageFunc(ctx, itemID, folderID)
	}
	return nil, nil
}

func newTestRouter(service Service) chi.Router {
	r := chi.NewRouter()
	NewHandler(service).RegisterRoutes(r)
	return r
}

func TestHandler_ListMessages(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		mockReturn     *ListMessagesResponse
		mockError      error
		expectedStatus int
	}{
		{
			name:        "successful list with defaults",
			queryParams: "",
			mockReturn: &ListMessagesResponse{
				Messages: []MessageSummary{
					{ID: "id-1", ChangeKey: "ck-1", Subject: "hello", IsRead: true},
				},
				Folder: "inbox",
				Count:  1,
				Limit:  50,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "backend failure",
			queryParams:    "?folder=inbox",
			mockError:      context.DeadlineExceeded,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFolder string
			mockService := &MockService{
				ListMessagesFunc: func(ctx context.Context, folder, delegateFor string, limit, offset int) (*ListMessagesResponse, error) {
					gotFolder = folder
					return tt.mockReturn, tt.mockError
				},
			}

			r := newTestRouter(mockService)
			req := httptest.NewRequest(http.MethodGet, "/mail/messages"+tt.queryParams, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.queryParams != "" && gotFolder != "inbox" {
				t.Errorf("folder param = %q", gotFolder)
			}
		})
	}
}

func TestHandler_GetMessage(t *testing.T) {
	tests := []struct {
		name           string
		itemID         string
		mockReturn     *MessageDetailResponse
		mockError      error
		expectedStatus int
	}{
		{
			name:   "found",
			itemID: "id-1",
			mockReturn: &MessageDetailResponse{
				MessageSummary: MessageSummary{ID: "id-1", Subject: "hello"},
				Body:           "body text",
				BodyType:       "Text",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			itemID:         "gone",
			mockError:      ews.ErrMessageNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing item id",
			itemID:         "",
			mockError:      ErrMissingItemID,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockService{
				GetMessageFunc: func(ctx context.Context, itemID string) (*MessageDetailResponse, error) {
					return tt.mockReturn, tt.mockError
				},
			}

			r := newTestRouter(mockService)
			req := httptest.NewRequest(http.MethodGet, "/mail/message?item_id="+tt.itemID, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedStatus == http.StatusOK {
				var resp MessageDetailResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.ID != tt.mockReturn.ID || resp.Body != tt.mockReturn.Body {
					t.Errorf("response = %+v", resp)
				}
			}
		})
	}
}

func TestHandler_CreateMessage(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockReturn     *MessageDetailResponse
		mockError      error
		expectedStatus int
	}{
		{
			name: "successful creation",
			requestBody: CreateMessageRequest{
				FolderID:     "drafts",
				Subject:      "status report",
				Body:         "all good",
				ToRecipients: []string{"alice@example.com"},
			},
			mockReturn: &MessageDetailResponse{
				MessageSummary: MessageSummary{ID: "id-new", ChangeKey: "ck-new", Subject: "status report"},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing subject",
			requestBody:    CreateMessageRequest{FolderID: "drafts"},
			mockError:      ErrMissingSubject,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			requestBody:    "{not json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockService{
				CreateMessageFunc: func(ctx context.Context, req *CreateMessageRequest) (*MessageDetailResponse, error) {
					return tt.mockReturn, tt.mockError
				},
			}

			var body bytes.Buffer
			if s, ok := tt.requestBody.(string); ok {
				body.WriteString(s)
			} else if err := json.NewEncoder(&body).Encode(tt.requestBody); err != nil {
				t.Fatalf("encode request: %v", err)
			}

			r := newTestRouter(mockService)
			req := httptest.NewRequest(http.MethodPost, "/mail/messages", &body)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandler_SendMessage(t *testing.T) {
	var gotItemID string
	mockService := &MockService{
		SendMessageFunc: func(ctx context.Context, itemID string) error {
			gotItemID = itemID
			return nil
		},
	}

	r := newTestRouter(mockService)
	req := httptest.NewRequest(http.MethodPost, "/mail/message/send?item_id=id-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if gotItemID != "id-1" {
		t.Errorf("item_id = %q", gotItemID)
	}
}

func TestHandler_MoveMessage(t *testing.T) {
	var gotFolder string
	mockService := &MockService{
		MoveMessageFunc: func(ctx context.Context, itemID, folderID string) error {
			gotFolder = folderID
			return nil
		},
	}

	body := bytes.NewBufferString(`{"folder_id":"archive-folder"}`)
	r := newTestRouter(mockService)
	req := httptest.NewRequest(http.MethodPost, "/mail/message/move?item_id=id-1", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if gotFolder != "archive-folder" {
		t.Errorf("folder_id = %q", gotFolder)
	}
}

func TestHandler_DeleteMessage(t *testing.T) {
	mockService := &MockService{
		DeleteMessageFunc: func(ctx context.Context, itemID string) error {
			return ews.ErrMessageNotFound
		},
	}

	r := newTestRouter(mockService)
	req := httptest.NewRequest(http.MethodDelete, "/mail/message?item_id=gone", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandler_CopyMessage(t *testing.T) {
	mockService := &MockService{
		CopyMessageFunc: func(ctx context.Context, itemID, folderID string) (*MessageSummary, error) {
			return &MessageSummary{ID: "id-copy", ChangeKey: "ck-copy"}, nil
		},
	}

	body := bytes.NewBufferString(`{"folder_id":"drafts"}`)
	r := newTestRouter(mockService)
	req := httptest.NewRequest(http.MethodPost, "/mail/message/copy?item_id=id-1", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", rec.Code)
	}
	var resp MessageSummary
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "id-copy" {
		t.Errorf("copy id = %q", resp.ID)
	}
}
