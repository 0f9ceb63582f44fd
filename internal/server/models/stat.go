package models

// Game results accepted by the stats table.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultPush = "push"
)

// StatRecord is one append-only gameplay record, keyed by
// (UserID, Timestamp). Records are never updated or deleted.
//
// NetPayout, HandsPlayed and Details are optional extended fields kept
// backward compatible with older clients that only send result/mistakes.
type StatRecord struct {
	UserID    string `dynamodbav:"userId"`
	Timestamp string `dynamodbav:"timestamp"`
	Result    string `dynamodbav:"result"`
	Mistakes  int    `dynamodbav:"mistakes"`

	NetPayout   *int           `dynamodbav:"net_payout,omitempty"`
	HandsPlayed *int           `dynamodbav:"hands_played,omitempty"`
	Details     map[string]any `dynamodbav:"details,omitempty"`
}

// ValidResult reports whether r is one of the accepted game results.
func ValidResult(r string) bool {
	return r == ResultWin || r == ResultLoss || r == ResultPush
}
