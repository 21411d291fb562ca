package email

import "context"

// SendWelcomeEmail greets a freshly registered user.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, username string) error {
	data := map[string]string{
		"Username": username,
	}

	return c.SendEmail(ctx, to, TemplateWelcome.Subject(), TemplateWelcome, data)
}
