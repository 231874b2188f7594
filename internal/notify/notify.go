// Package notify sends transactional emails about finished interviews.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"mockly-server/internal/observability"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=notify.go -destination=mocks_test.go -package=notify

var (
	ErrSendingEmail = errors.New("error sending email")
	ErrRendering    = errors.New("failed to render email")
)

// Mailer delivers one HTML email and returns the provider message id.
type Mailer interface {
	SendEmail(ctx context.Context, from, to, subject, htmlContent string) (string, error)
}

// FeedbackReady describes a stored feedback the candidate should be told about.
type FeedbackReady struct {
	To          string
	Name        string
	Role        string
	InterviewID uuid.UUID
	FeedbackID  uuid.UUID
	TotalScore  int
}

const feedbackReadySubject = "Your interview feedback is ready"

var feedbackReadyTemplate = template.Must(template.New("feedback_ready").Parse(`
<html>
	<body>
		<h1>Your feedback is ready</h1>
		<p>Hi {{.Name}},</p>
		<p>Thanks for practicing your {{.Role}} interview with Mockly. You scored <strong>{{.TotalScore}}/100</strong>.</p>
		<p><a href="{{.Link}}" style="background-color: #2563EB; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View your feedback</a></p>
		<p>Keep practicing to improve your score.</p>
	</body>
</html>
`))

// Notifier renders and sends notification emails. A Notifier without a Mailer sends nothing.
type Notifier struct {
	mailer    Mailer
	sender    string
	webAppURI string
	logger    *observability.Logger
}

func New(mailer Mailer, sender, webAppURI string, logger *observability.Logger) *Notifier {
	return &Notifier{
		mailer:    mailer,
		sender:    sender,
		webAppURI: strings.TrimRight(webAppURI, "/"),
		logger:    logger,
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.mailer != nil
}

// FeedbackLink is the web app page showing one feedback.
func (n *Notifier) FeedbackLink(interviewID, feedbackID uuid.UUID) string {
	return fmt.Sprintf("%s/interview/%s/feedback/%s", n.webAppURI, interviewID, feedbackID)
}

func (n *Notifier) SendFeedbackReady(ctx context.Context, msg FeedbackReady) error {
	if !n.Enabled() {
		return nil
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_type", Value: "feedback_ready"},
		observability.Field{Key: "interview_id", Value: msg.InterviewID},
		observability.Field{Key: "feedback_id", Value: msg.FeedbackID},
	)

	name := msg.Name
	if name == "" {
		name = "there"
	}

	var buf bytes.Buffer
	err := feedbackReadyTemplate.Execute(&buf, struct {
		Name       string
		Role       string
		TotalScore int
		Link       string
	}{
		Name:       name,
		Role:       msg.Role,
		TotalScore: msg.TotalScore,
		Link:       n.FeedbackLink(msg.InterviewID, msg.FeedbackID),
	})
	if err != nil {
		n.logger.Error(ctx, "failed to render feedback ready email", err)
		return fmt.Errorf("%w: %s", ErrRendering, err.Error())
	}

	if _, err := n.mailer.SendEmail(ctx, n.sender, msg.To, feedbackReadySubject, buf.String()); err != nil {
		n.logger.Error(ctx, "failed to send feedback ready email", err)
		return fmt.Errorf("%w: %s", ErrSendingEmail, err.Error())
	}

	n.logger.Info(ctx, "feedback ready email sent")
	return nil
}
