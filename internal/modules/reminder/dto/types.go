package dto

type Alert struct {
	Key     string `json:"key"`
	Channel string `json:"channel"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

type RunReport struct {
	Delivered []Alert  `json:"delivered"`
	Failed    []string `json:"failed"`
	Pruned    int      `json:"pruned"`
}
