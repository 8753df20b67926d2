package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/beevik/etree"

	"github.com/apex-meme-lord/ewsclient/ews"
)

// fakeTransport returns a canned SOAP response for every request.
type fakeTransport struct {
	response string
	lastDoc  *etree.Document
}

func (f *fakeTransport) Send(ctx context.Context, doc *etree.Document) (*etree.Document, error) {
	f.lastDoc = doc
	out := etree.NewDocument()
	if err := out.ReadFromString(f.response); err != nil {
		return nil, err
	}
	return out, nil
}

const findResponse = `<?xml version="1.0" encoding="utf-8"?>
<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/">
  <s:Body>
    <m:FindItemResponse xmlns:m="http://schemas.microsoft.com/exchange/services/2006/messages" xmlns:t="http://schemas.microsoft.com/exchange/services/2006/types">
      <m:ResponseMessages>
        <m:FindItemResponseMessage ResponseClass="Success">
          <m:ResponseCode>NoError</m:ResponseCode>
          <m:RootFolder TotalItemsInView="2" IncludesLastItemInRange="true">
            <t:Items>
              <t:Message>
                <t:ItemId Id="id-1" ChangeKey="ck-1"/>
                <t:Subject>first</t:Subject>
                <t:IsRead>true</t:IsRead>
              </t:Message>
              <t:Message>
                <t:ItemId Id="id-2" ChangeKey="ck-2"/>
                <t:Subject>second</t:Subject>
                <t:IsRead>false</t:IsRead>
              </t:Message>
            </t:Items>
          </m:RootFolder>
        </m:FindItemResponseMessage>
      </m:ResponseMessages>
    </m:FindItemResponse>
  </s:Body>
</s:Envelope>`

func TestServiceListMessages(t *testing.T) {
	transport := &fakeTransport{response: findResponse}
	service := NewService(ews.NewMessageService(transport, nil))

	result, err := service.ListMessages(context.Background(), "", "", 0, -5)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}

	if result.Folder != "inbox" {
		t.Errorf("Folder = %q, want the inbox default", result.Folder)
	}
	if result.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", result.Limit, DefaultLimit)
	}
	if result.Offset != 0 {
		t.Errorf("Offset = %d, want 0 for a negative input", result.Offset)
	}
	if result.Count != 2 || len(result.Messages) != 2 {
		t.Fatalf("Count = %d, want 2", result.Count)
	}
	if result.Messages[0].ID != "id-1" || result.Messages[0].Subject != "first" || !result.Messages[0].IsRead {
		t.Errorf("first summary = %+v", result.Messages[0])
	}

	// the sanitized page size reaches the wire request
	page := transport.lastDoc.FindElement("//m:IndexedPageItemView")
	if got := page.SelectAttrValue("MaxEntriesReturned", ""); got != "50" {
		t.Errorf("MaxEntriesReturned = %q, want the sanitized default", got)
	}
}

func TestServiceListMessagesCapsLimit(t *testing.T) {
	transport := &fakeTransport{response: findResponse}
	service := NewService(ews.NewMessageService(transport, nil))

	result, err := service.ListMessages(context.Background(), "inbox", "", 5000, 0)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if result.Limit != MaxLimit {
		t.Errorf("Limit = %d, want the %d cap", result.Limit, MaxLimit)
	}
}

func TestServiceRequiresItemID(t *testing.T) {
	service := NewService(ews.NewMessageService(&fakeTransport{}, nil))
	ctx := context.Background()

	if _, err := service.GetMessage(ctx, ""); !errors.Is(err, ErrMissingItemID) {
		t.Errorf("GetMessage err = %v", err)
	}
	if err := service.SendMessage(ctx, ""); !errors.Is(err, ErrMissingItemID) {
		t.Errorf("SendMessage err = %v", err)
	}
	if err := service.MoveMessage(ctx, "id-1", ""); !errors.Is(err, ErrMissingFolderID) {
		t.Errorf("MoveMessage err = %v", err)
	}
}

func TestServiceCreateRequiresSubject(t *testing.T) {
	service := NewService(ews.NewMessageService(&fakeTransport{}, nil))

	_, err := service.CreateMessage(context.Background(), &CreateMessageRequest{Body: "no subject"})
	if !errors.Is(err, ErrMissingSubject) {
		t.Errorf("CreateMessage err = %v", err)
	}
}
