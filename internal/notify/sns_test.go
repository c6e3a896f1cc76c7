package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/dvdk01/urlwatch/internal/schema"
	"github.com/stretchr/testify/assert"
)

type fakePublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

func TestSNSNotifier_Send(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		event       schema.Event
		publishErr  error
		wantErr     bool
		wantMessage string
	}{
		// Test case for a content drift alert
		// Verifies the SMS goes to the configured number with the short
		// event rendering
		{
			name: "content changed delivered",
			event: schema.Event{
				Kind:      schema.KindContentChanged,
				Timestamp: time.Now(),
				Detail:    "content digest changed to aaf4c61d",
			},
			wantMessage: "urlwatch CONTENT_CHANGED: content digest changed to aaf4c61d",
		},
		// Test case for an unreachable alert
		// Verifies the cause lands in the message body
		{
			name: "unreachable delivered",
			event: schema.Event{
				Kind:   schema.KindUnreachable,
				Detail: "connection refused",
			},
			wantMessage: "urlwatch UNREACHABLE: connection refused",
		},
		// Test case for a rejected publish
		// Verifies the API error is wrapped and surfaced to the caller
		{
			name:       "publish rejected",
			event:      schema.Event{Kind: schema.KindUnreachable, Detail: "x"},
			publishErr: errors.New("AuthorizationError"),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakePublisher{err: tt.publishErr}
			n := &SNSNotifier{client: fake, phone: "+12345679999"}

			err := n.Send(context.Background(), tt.event)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "publishing to SNS")
				return
			}

			assert.NoError(t, err)
			assert.Len(t, fake.inputs, 1)
			assert.Equal(t, "+12345679999", *fake.inputs[0].PhoneNumber)
			assert.Equal(t, tt.wantMessage, *fake.inputs[0].Message)
		})
	}
}

// Test case for the startup announcement
// Verifies the free-form message is published verbatim to the configured
// number
func TestSNSNotifier_Announce(t *testing.T) {
	t.Parallel()

	fake := &fakePublisher{}
	n := &SNSNotifier{client: fake, phone: "+12345679999"}

	assert.NoError(t, n.Announce(context.Background(), "Begin monitoring: https://example.com"))
	assert.Len(t, fake.inputs, 1)
	assert.Equal(t, "Begin monitoring: https://example.com", *fake.inputs[0].Message)
}
