package email

import (
	"fmt"
	"strconv"
)

// SendTicketAccessEmail tells a ticket author that a guest session was opened
// for their ticket.
func (c *Client) SendTicketAccessEmail(to string, ticketNumber int64) error {
	number := strconv.FormatInt(ticketNumber, 10)
	data := map[string]string{
		"TicketNumber": number,
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("Ticket #%s was opened", number),
		TemplateTicketAccess,
		data,
	)
}
