package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mamadbah2/aquafarm/internal/config"
	"github.com/mamadbah2/aquafarm/internal/domain/models"
	"github.com/mamadbah2/aquafarm/internal/repository/mongodb"
	"github.com/mamadbah2/aquafarm/internal/service/commands"
	"github.com/mamadbah2/aquafarm/pkg/clients/anthropic"
	client "github.com/mamadbah2/aquafarm/pkg/clients/whatsapp"
)

type fakeClient struct {
	sent []client.SendTextMessageRequest
}

func (f *fakeClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	f.sent = append(f.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

type fakeDispatcher struct {
	got []models.Command
	err error
}

func (f *fakeDispatcher) HandleCommand(_ context.Context, cmd models.Command, sender string) (string, error) {
	f.got = append(f.got, cmd)
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("ok %s for %s", cmd.Type, sender), nil
}

type fakeTranslator struct {
	command string
	err     error
}

func (f fakeTranslator) TranslateToCommand(context.Context, string) (string, error) {
	return f.command, f.err
}

func textPayload(from, body string) models.WebhookPayload {
	return models.WebhookPayload{Entry: []models.WebhookEntry{{
		Changes: []models.WebhookChange{{
			Value: models.WebhookValue{Messages: []models.InboundMessage{{
				From: from, ID: "wamid", Type: "text", Text: &models.TextContent{Body: body},
			}}},
		}},
	}}}
}

func newTestService(d commands.Dispatcher, tr anthropic.Client) (*MetaWhatsAppService, *fakeClient) {
	fc := &fakeClient{}
	return NewMetaWhatsAppService(config.WhatsAppConfig{VerifyToken: "tok"}, fc, tr, d, nil), fc
}

func TestVerifyWebhookToken(t *testing.T) {
	svc, _ := newTestService(&fakeDispatcher{}, nil)

	tests := []struct {
		mode, token string
		wantErr     bool
	}{
		{"subscribe", "tok", false},
		{"SUBSCRIBE", "tok", false},
		{"subscribe", "bad", true},
		{"unsubscribe", "tok", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := svc.VerifyWebhookToken(tt.mode, tt.token, "challenge")
		if (err != nil) != tt.wantErr {
			t.Errorf("%s/%s: unexpected error %v", tt.mode, tt.token, err)
		}
		if err == nil && got != "challenge" {
			t.Errorf("expected challenge echoed, got %q", got)
		}
	}
}

func TestHandleWebhook_DispatchesSlashCommand(t *testing.T) {
	d := &fakeDispatcher{}
	svc, fc := newTestService(d, fakeTranslator{command: "/status"})

	if err := svc.HandleWebhook(context.Background(), textPayload("221", "/feed 2 grower")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.got) != 1 || d.got[0].Type != models.CommandFeed {
		t.Fatalf("slash commands must bypass translation, got %+v", d.got)
	}
	if len(fc.sent) != 1 || fc.sent[0].To != "221" || fc.sent[0].Body != "ok feed for 221" {
		t.Errorf("unexpected reply %+v", fc.sent)
	}
}

func TestHandleWebhook_TranslatesFreeText(t *testing.T) {
	d := &fakeDispatcher{}
	svc, _ := newTestService(d, fakeTranslator{command: "/mortality 3 heat"})

	if err := svc.HandleWebhook(context.Background(), textPayload("221", "3 poissons morts ce matin")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.got) != 1 || d.got[0].Type != models.CommandMortality || d.got[0].Args[0] != "3" {
		t.Fatalf("unexpected dispatched command %+v", d.got)
	}
}

func TestHandleWebhook_ErrorReplies(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{commands.ErrNoPondSelected, "/pond"},
		{commands.ErrInvalidArguments, "/help"},
		{commands.ErrPondEmpty, "/stock"},
		{commands.ErrUnsupportedCommand, "Unknown command"},
		{fmt.Errorf("pond x: %w", mongodb.ErrPondNotFound), "Unknown pond"},
		{errors.New("boom"), "try again"},
	}

	for _, tt := range tests {
		svc, fc := newTestService(&fakeDispatcher{err: tt.err}, fakeTranslator{err: anthropic.ErrNoCommand})
		if err := svc.HandleWebhook(context.Background(), textPayload("221", "hello")); err != nil {
			t.Fatalf("dispatch errors are answered, not returned: %v", err)
		}
		if len(fc.sent) != 1 || !strings.Contains(fc.sent[0].Body, tt.want) {
			t.Errorf("%v: expected reply containing %q, got %+v", tt.err, tt.want, fc.sent)
		}
	}
}

func TestHandleWebhook_IgnoresNonText(t *testing.T) {
	d := &fakeDispatcher{}
	svc, fc := newTestService(d, nil)
	payload := models.WebhookPayload{Entry: []models.WebhookEntry{{
		Changes: []models.WebhookChange{{Value: models.WebhookValue{Messages: []models.InboundMessage{{From: "221", Type: "image"}}}}},
	}}}

	if err := svc.HandleWebhook(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.got) != 0 || len(fc.sent) != 0 {
		t.Errorf("expected nothing dispatched or sent")
	}
}
