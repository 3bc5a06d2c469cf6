package dto

type Tier struct {
	Solved int `json:"solved"`
	Total  int `json:"total"`
	Pct    int `json:"pct"`
}

type Stats struct {
	Username string `json:"username"`
	Easy     Tier   `json:"easy"`
	Medium   Tier   `json:"medium"`
	Hard     Tier   `json:"hard"`
	Solved   int    `json:"solved"`
	Ranking  int    `json:"ranking,omitempty"`
	Analysis string `json:"analysis"`
}
