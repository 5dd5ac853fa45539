package provider

import (
	"reflect"
	"strings"
	"testing"

	"github.com/foundry-9/quilltap-providers/model"
	"github.com/foundry-9/quilltap-providers/provider/testutil"
)

var testMimeTypes = []string{"image/png", "image/jpeg"}

func TestFormatMessagesPassThrough(t *testing.T) {
	messages := testutil.TestMessages()

	formatted, result := FormatMessages(messages, testMimeTypes)

	if len(formatted) != len(messages) {
		t.Fatalf("message count: got %d, want %d", len(formatted), len(messages))
	}
	if !result.Empty() {
		t.Errorf("no attachments in input, but got results: %+v", result)
	}

	// Content passes through unchanged as plain strings.
	if got := formatted[0].OfSystem.Content.OfString.Value; got != messages[0].Content {
		t.Errorf("system content: got %q, want %q", got, messages[0].Content)
	}
	if got := formatted[1].OfUser.Content.OfString.Value; got != messages[1].Content {
		t.Errorf("user content: got %q, want %q", got, messages[1].Content)
	}
	if got := formatted[2].OfAssistant.Content.OfString.Value; got != messages[2].Content {
		t.Errorf("assistant content: got %q, want %q", got, messages[2].Content)
	}
}

func TestFormatMessagesAttachmentClassification(t *testing.T) {
	tests := []struct {
		name       string
		attachment model.Attachment
		wantSent   bool
		wantError  string
	}{
		{
			name:       "supported and loaded",
			attachment: testutil.PNGAttachment("att-1"),
			wantSent:   true,
		},
		{
			name:       "unsupported mime type",
			attachment: testutil.PDFAttachment("att-2"),
			wantError:  "Unsupported file type: application/pdf. Supported: image/png, image/jpeg",
		},
		{
			name:       "data not loaded",
			attachment: testutil.UnloadedAttachment("att-3"),
			wantError:  "File data not loaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := []model.Message{
				testutil.MessageWithAttachments("look at this", tt.attachment),
			}

			_, result := FormatMessages(messages, testMimeTypes)

			if got := len(result.Sent) + len(result.Failed); got != 1 {
				t.Fatalf("attachment appears in %d lists, want exactly 1", got)
			}
			if tt.wantSent {
				if len(result.Sent) != 1 || result.Sent[0] != tt.attachment.ID {
					t.Errorf("expected sent=[%s], got %+v", tt.attachment.ID, result)
				}
				return
			}
			if len(result.Failed) != 1 {
				t.Fatalf("expected failure, got %+v", result)
			}
			failure := result.Failed[0]
			if failure.ID != tt.attachment.ID {
				t.Errorf("failure id: got %q, want %q", failure.ID, tt.attachment.ID)
			}
			if failure.Error != tt.wantError {
				t.Errorf("failure error: got %q, want %q", failure.Error, tt.wantError)
			}
		})
	}
}

func TestFormatMessagesClassificationPartition(t *testing.T) {
	attachments := []model.Attachment{
		testutil.PNGAttachment("a"),
		testutil.PDFAttachment("b"),
		testutil.UnloadedAttachment("c"),
		testutil.PNGAttachment("d"),
	}
	messages := []model.Message{
		testutil.MessageWithAttachments("first", attachments[0], attachments[1]),
		testutil.MessageWithAttachments("second", attachments[2], attachments[3]),
	}

	_, result := FormatMessages(messages, testMimeTypes)

	if got := len(result.Sent) + len(result.Failed); got != len(attachments) {
		t.Fatalf("partition size: got %d, want %d", got, len(attachments))
	}
	seen := make(map[string]int)
	for _, id := range result.Sent {
		seen[id]++
	}
	for _, f := range result.Failed {
		seen[f.ID]++
	}
	for _, att := range attachments {
		if seen[att.ID] != 1 {
			t.Errorf("attachment %s appears %d times across sent+failed, want 1", att.ID, seen[att.ID])
		}
	}
}

func TestFormatMessagesEmbedsDataURL(t *testing.T) {
	att := testutil.PNGAttachment("att-1")
	messages := []model.Message{testutil.MessageWithAttachments("caption", att)}

	formatted, _ := FormatMessages(messages, testMimeTypes)

	parts := formatted[0].OfUser.Content.OfArrayOfContentParts
	if len(parts) != 2 {
		t.Fatalf("expected text part + image part, got %d parts", len(parts))
	}
	if parts[0].OfText == nil || parts[0].OfText.Text != "caption" {
		t.Errorf("first part should be the text content, got %+v", parts[0])
	}
	if parts[1].OfImageURL == nil {
		t.Fatalf("second part should be an image, got %+v", parts[1])
	}
	url := parts[1].OfImageURL.ImageURL.URL
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("image URL is not a png data URL: %q", url)
	}
	if !strings.HasSuffix(url, att.Data) {
		t.Error("image URL does not embed the attachment payload")
	}
}

func TestFormatMessagesFailedAttachmentAbsentFromContent(t *testing.T) {
	messages := []model.Message{
		testutil.MessageWithAttachments("caption", testutil.PDFAttachment("att-1")),
	}

	formatted, result := FormatMessages(messages, []string{"image/png"})

	if len(result.Failed) != 1 {
		t.Fatalf("expected classification failure, got %+v", result)
	}
	if !strings.HasPrefix(result.Failed[0].Error, "Unsupported file type: application/pdf") {
		t.Errorf("unexpected failure error: %q", result.Failed[0].Error)
	}
	parts := formatted[0].OfUser.Content.OfArrayOfContentParts
	for _, part := range parts {
		if part.OfImageURL != nil {
			t.Error("failed attachment leaked into formatted content")
		}
	}
}

func TestFormatMessagesIdempotent(t *testing.T) {
	messages := []model.Message{
		testutil.MessageWithAttachments("look",
			testutil.PNGAttachment("a"), testutil.PDFAttachment("b")),
	}

	first, firstResult := FormatMessages(messages, testMimeTypes)
	second, secondResult := FormatMessages(messages, testMimeTypes)

	if !reflect.DeepEqual(firstResult, secondResult) {
		t.Errorf("attachment results differ across calls:\n%+v\n%+v", firstResult, secondResult)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("formatted messages differ across calls")
	}
}
