package latency

// Operation names used by the command handlers. Config overrides are keyed
// by these strings.
const (
	OpCreatePost        Op = "create_post"
	OpEditPost          Op = "edit_post"
	OpDeletePost        Op = "delete_post"
	OpAddComment        Op = "add_comment"
	OpReact             Op = "react"
	OpSendFriendRequest Op = "send_friend_request"
	OpAnswerFriend      Op = "answer_friend_request"
	OpUnfriend          Op = "unfriend"
	OpRSVP              Op = "rsvp"
	OpSaveEvent         Op = "save_event"
	OpCreateChat        Op = "create_conversation"
	OpSendMessage       Op = "send_message"
	OpSaveListing       Op = "save_listing"
	OpSaveArticle       Op = "save_article"
	OpJoinGroup         Op = "join_group"
	OpSaveGroup         Op = "save_group"
	OpMentorship        Op = "mentorship"
	OpUpdateProfile     Op = "update_profile"
	OpSaveSchedule      Op = "save_schedule"
	OpSaveJob           Op = "save_job"
	OpVote              Op = "vote"
	OpCampusCRUD        Op = "campus_crud"
	OpAdmin             Op = "admin"
)
