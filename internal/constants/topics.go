package constants

const (
	TopicGroups       = "groups"
	TopicTasks        = "tasks"
	TopicTransactions = "transactions"
)

func UserTopic(userID string) string {
	return "user:" + userID
}
