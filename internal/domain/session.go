package domain

// Placeholders used in the unload snapshot when nobody logged in
const (
	UnknownUser  = "Unknown User"
	UnknownTime  = "Unknown Time"
	UnknownPlace = "unknown"
	TimerPrefix  = "Time: "
)

// SessionRecord summarizes one login and is posted to the form relay at logout
type SessionRecord struct {
	ID            string     `json:"id"`
	User          string     `json:"user"`
	LoginTime     string     `json:"loginTime"`
	LoginLocation string     `json:"loginLocation"`
	TableName     string     `json:"tableName"`
	TableData     [][]string `json:"tableData"`
	ElapsedTime   string     `json:"elapsedTime"`
}

// UnloadSnapshot is the best-effort payload posted when a workspace closes
type UnloadSnapshot struct {
	UserName  string `json:"userName"`
	LoginTime string `json:"loginTime"`
	Timer     string `json:"timer"`
	TableHTML string `json:"tableHTML"`
}
