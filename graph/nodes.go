package graph

// Node shapes mirrored into the graph. Field names become property keys,
// so they stay lowercase-friendly through the json round trip in
// ToProperties.

type Guild struct {
	Id      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	OwnerId string `json:"ownerId,omitempty"`
}

type Member struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type TextChannel struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Message struct {
	Id          string `json:"id,omitempty"`
	Text        string `json:"text,omitempty"`
	CreatedDate string `json:"createdDate,omitempty"`
	UpdatedDate string `json:"updatedDate,omitempty"`
}
