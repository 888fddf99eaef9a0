package bot

import (
	"fmt"
	"strings"
)

func helpMessage(userID string) string {
	return fmt.Sprintf(`👋 Hello <@%s>!
Hope you're doing great!
I'm *TaskMind AI* – your virtual assistant.
I can help you with:
• `+"`Scheduling meetings`"+`
• `+"`Parsing natural language into actions`"+`

Just type something like:
`+"`schedule a meeting on Wednesday at 3pm with Sai to discuss Q2 sales`", userID)
}

func summaryMessage(sess PendingSession) string {
	return fmt.Sprintf(`*Meeting Request:*
• *Topic:* %s
• *Participants:* %s
• *Schedule on:* %s, %s

📨 *Please reply with participants' email addresses (comma-separated) to proceed.*
➡️ Example: `+"`taskmindai@support.com, team@taskmindai.com`",
		sess.Topic, strings.Join(sess.Names, ", "), sess.Date, sess.Time)
}

func parseFailureMessage(err error) string {
	return fmt.Sprintf("Failed to parse meeting: %s, please enter details correctly.", err)
}

func confirmationMessage(sess PendingSession, joinURL string) string {
	return fmt.Sprintf(`✅ *Meeting Scheduled!*
• *Topic:* %s
• *Participants:* %s
🔗 <%s|Join Meeting>`,
		sess.Topic, strings.Join(sess.Names, ", "), joinURL)
}

func bookingFailureMessage(err error) string {
	return fmt.Sprintf("❌ Teams meeting creation failed: %s", err)
}

const noPendingMessage = "🤔 I don't have a pending meeting request from you. " +
	"Start one with something like `schedule a meeting on Wednesday at 3pm with Sai to discuss Q2 sales`."
