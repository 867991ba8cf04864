package tools

type DocumentAction struct {
	JSON string `json:"json"`
}
