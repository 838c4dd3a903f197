package bot

import "fmt"

const (
	TEXT_TICKET_CREATED     = "✅ Ticket created! Please head to "
	TEXT_ALREADY_HAS_TICKET = "❌ You already have an active ticket! Please close your current ticket first."
	TEXT_CREATE_FAILED      = "❌ Error creating ticket: "
	TEXT_NOT_A_TICKET       = "❌ This is not a ticket channel!"
	TEXT_NOT_ADMIN          = "❌ You need administrator permissions to use this command!"
	TEXT_SOMETHING_WRONG    = "❌ Something went wrong, please try again later."

	TEXT_ALIVE = "Bot is alive!"
)

// configurationMissingText names what the admin has to create.
func configurationMissingText(resource, name string) string {
	switch resource {
	case "category":
		return fmt.Sprintf("❌ Category '%s' not found! Please contact an admin.", name)
	case "role":
		return fmt.Sprintf("❌ Role '%s' not found! Please contact an admin.", name)
	}
	return "❌ This ticket type is not configured! Please contact an admin."
}
