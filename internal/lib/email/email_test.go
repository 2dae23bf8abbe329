package email

import (
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "msg_1"}, nil
}

func newTestClient(s sender) *Client {
	logger := zerolog.Nop()
	return &Client{emails: s, from: "Booking <bookings@example.com>", logger: &logger}
}

func TestRenderPreviewData(t *testing.T) {
	for name, data := range PreviewData {
		body, err := Render(name, data)
		require.NoError(t, err, name)
		assert.NotEmpty(t, body, name)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestSendAppointmentBookedEmail(t *testing.T) {
	fake := &fakeSender{}
	client := newTestClient(fake)

	err := client.SendAppointmentBookedEmail("info@example.com", AppointmentBookedData{
		BusinessName:  "Rom Rental Center",
		AppointmentID: 7,
		Service:       "Meeting room A",
		DateTime:      "2025-03-01T09:00",
		CustomerName:  "Noa",
		CustomerPhone: "050-1111111",
	})
	require.NoError(t, err)
	require.Len(t, fake.sent, 1)

	msg := fake.sent[0]
	assert.Equal(t, []string{"info@example.com"}, msg.To)
	assert.Equal(t, "Booking <bookings@example.com>", msg.From)
	assert.Equal(t, "New booking: 2025-03-01T09:00", msg.Subject)
	assert.Contains(t, msg.Html, "Meeting room A")
	assert.Contains(t, msg.Html, "#7")
	assert.Contains(t, msg.Html, "Noa")
}

func TestSendEmailProviderError(t *testing.T) {
	client := newTestClient(&fakeSender{err: errors.New("boom")})

	err := client.SendEmail("info@example.com", "hi", TemplateAppointmentBooked, PreviewData[TemplateAppointmentBooked])
	assert.ErrorContains(t, err, "failed to send email")
}
