package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// English is the canonical catalog. Every key used by templates and flash
// messages is defined here; the other locale files mirror this set.
func init() {
	lang := language.English

	message.SetString(lang, "app.title", "Family Wishlist")

	message.SetString(lang, "nav.home", "Family")
	message.SetString(lang, "nav.my_list", "My wishlist")
	message.SetString(lang, "nav.comments", "Comments")
	message.SetString(lang, "nav.admin", "Admin")
	message.SetString(lang, "nav.switch", "Switch person")

	message.SetString(lang, "identity.heading", "Who are you?")
	message.SetString(lang, "identity.hint", "Pick your own name. Parents can also tick the kids they type for.")
	message.SetString(lang, "identity.submit", "Continue")
	message.SetString(lang, "identity.error_none", "Pick at least one name.")

	message.SetString(lang, "home.heading", "Family members")
	message.SetString(lang, "home.name", "Name")
	message.SetString(lang, "home.team", "Team")
	message.SetString(lang, "home.wishes", "Wishes")
	message.SetString(lang, "home.view", "View list")
	message.SetString(lang, "home.deadline", "Wishes can be added until %s.")
	message.SetString(lang, "home.locked", "The wish deadline has passed. Lists are locked.")
	message.SetString(lang, "home.draw_done", "The draw has been made. Check your page to see who you are gifting.")
	message.SetString(lang, "home.empty", "No family members yet. Ask the admin to add some.")

	message.SetString(lang, "wishlist.own_heading", "%s's wishlist")
	message.SetString(lang, "wishlist.receiver_heading", "%s, you are gifting to %s")
	message.SetString(lang, "wishlist.hidden_note", "%s is looking at this screen, so their surprise stays hidden.")
	message.SetString(lang, "wishlist.add_heading", "Add a wish")
	message.SetString(lang, "wishlist.text_label", "What do you wish for?")
	message.SetString(lang, "wishlist.link_label", "Product link (optional)")
	message.SetString(lang, "wishlist.add_button", "Add wish")
	message.SetString(lang, "wishlist.delete", "Delete")
	message.SetString(lang, "wishlist.reserve", "I'll get this")
	message.SetString(lang, "wishlist.release", "Never mind")
	message.SetString(lang, "wishlist.reserved", "Someone has this covered")
	message.SetString(lang, "wishlist.reserved_by_me", "You have this covered")
	message.SetString(lang, "wishlist.empty", "No wishes yet.")
	message.SetString(lang, "wishlist.locked", "The deadline has passed, new wishes are locked.")
	message.SetString(lang, "wishlist.no_draw", "The draw has not been made yet.")
	message.SetString(lang, "wishlist.back", "Back to the family")

	message.SetString(lang, "comments.heading", "Comment board")
	message.SetString(lang, "comments.form_heading", "Leave a comment")
	message.SetString(lang, "comments.body_label", "Your comment")
	message.SetString(lang, "comments.markdown_hint", "Markdown works.")
	message.SetString(lang, "comments.post", "Post")
	message.SetString(lang, "comments.empty", "No comments yet. Start the conversation.")
	message.SetString(lang, "comments.delete", "Delete")

	message.SetString(lang, "pagination.prev", "Previous")
	message.SetString(lang, "pagination.next", "Next")

	message.SetString(lang, "admin.login_heading", "Admin sign-in")
	message.SetString(lang, "admin.email", "Email")
	message.SetString(lang, "admin.password", "Password")
	message.SetString(lang, "admin.sign_in", "Sign in")
	message.SetString(lang, "admin.heading", "Admin")
	message.SetString(lang, "admin.members_heading", "Members")
	message.SetString(lang, "admin.add_heading", "Add member")
	message.SetString(lang, "admin.name", "Name")
	message.SetString(lang, "admin.team", "Team")
	message.SetString(lang, "admin.email_label", "Email")
	message.SetString(lang, "admin.add", "Add")
	message.SetString(lang, "admin.save", "Save")
	message.SetString(lang, "admin.remove", "Remove")
	message.SetString(lang, "admin.deadline_heading", "Wish deadline")
	message.SetString(lang, "admin.deadline_hint", "Wishes can be added up to and including this day.")
	message.SetString(lang, "admin.save_deadline", "Save deadline")
	message.SetString(lang, "admin.clear_deadline", "Clear")
	message.SetString(lang, "admin.draw_heading", "Gift draw")
	message.SetString(lang, "admin.run_draw", "Run the draw")
	message.SetString(lang, "admin.notify_label", "Email everyone a link to their page")
	message.SetString(lang, "admin.no_draw", "No draw yet.")
	message.SetString(lang, "admin.draw_partial", "The roster changed after this draw. Run it again to cover everyone.")
	message.SetString(lang, "admin.drawn_at", "Drawn %s")
	message.SetString(lang, "admin.gives_to", "gives to")
	message.SetString(lang, "admin.outbox_heading", "Email outbox")
	message.SetString(lang, "admin.queued", "%d queued")
	message.SetString(lang, "admin.view_outbox", "View outbox")
	message.SetString(lang, "admin.board_count", "%d comments")
	message.SetString(lang, "admin.sign_out", "Sign out")

	message.SetString(lang, "outbox.heading", "Email outbox")
	message.SetString(lang, "outbox.failed_heading", "Needs attention")
	message.SetString(lang, "outbox.recent_heading", "Recent deliveries")
	message.SetString(lang, "outbox.recipient", "Recipient")
	message.SetString(lang, "outbox.subject", "Subject")
	message.SetString(lang, "outbox.status", "Status")
	message.SetString(lang, "outbox.attempts", "Attempts")
	message.SetString(lang, "outbox.next_retry", "Next retry")
	message.SetString(lang, "outbox.error", "Error")
	message.SetString(lang, "outbox.retry", "Retry")
	message.SetString(lang, "outbox.abandon", "Abandon")
	message.SetString(lang, "outbox.delete", "Delete")
	message.SetString(lang, "outbox.empty", "The outbox is empty.")
	message.SetString(lang, "outbox.back", "Back to admin")

	message.SetString(lang, "flash.identity_saved", "Welcome!")
	message.SetString(lang, "flash.identity_gone", "That name is no longer on the list. Pick who you are again.")
	message.SetString(lang, "flash.wish_added", "Wish added.")
	message.SetString(lang, "flash.wish_added_for", "Wish added to %s's list.")
	message.SetString(lang, "flash.wish_deleted", "Wish removed.")
	message.SetString(lang, "flash.wish_reserved", "Reserved. It's yours to get.")
	message.SetString(lang, "flash.wish_released", "Reservation released.")
	message.SetString(lang, "flash.comment_posted", "Comment posted.")
	message.SetString(lang, "flash.comment_deleted", "Comment removed.")
	message.SetString(lang, "flash.member_added", "%s joined the list.")
	message.SetString(lang, "flash.member_updated", "%s updated.")
	message.SetString(lang, "flash.member_removed", "%s removed.")
	message.SetString(lang, "flash.deadline_set", "Deadline saved.")
	message.SetString(lang, "flash.deadline_cleared", "Deadline cleared.")
	message.SetString(lang, "flash.draw_done", "The draw is complete. Emails are on their way.")
	message.SetString(lang, "flash.draw_failed", "No valid pairing with these teams. Adjust teams and try again.")
	message.SetString(lang, "flash.draw_too_few", "Need at least two members to run a draw.")
	message.SetString(lang, "flash.wishes_locked", "The wish deadline has passed.")
	message.SetString(lang, "flash.login_failed", "Wrong email or password.")
	message.SetString(lang, "flash.login_locked", "Too many attempts. Try again in a few minutes.")
	message.SetString(lang, "flash.signed_out", "Signed out.")
	message.SetString(lang, "flash.outbox_retry", "Email queued for retry.")
	message.SetString(lang, "flash.outbox_abandoned", "Email abandoned.")
	message.SetString(lang, "flash.member_duplicate", "That name is already on the list.")
	message.SetString(lang, "flash.member_invalid", "Check the member's name and email.")
	message.SetString(lang, "flash.wish_invalid", "That wish could not be saved. Check the text and link.")
	message.SetString(lang, "flash.comment_invalid", "That comment could not be posted.")
	message.SetString(lang, "flash.deadline_invalid", "That is not a valid date.")
	message.SetString(lang, "flash.outbox_deleted", "Email log entry removed.")
}
