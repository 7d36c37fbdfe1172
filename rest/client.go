package rest

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/disgoorg/snowflake/v2"
)

// Invite is the resolved display info for an invite code. Not cached;
// fetched on demand.
type Invite struct {
	Code        string
	GuildID     snowflake.ID
	GuildName   string
	ChannelID   snowflake.ID
	ChannelName string
}

// InviteResolver is the slice of the REST surface the gateway core needs.
type InviteResolver interface {
	Invite(code string) (*Invite, error)
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
	Token   string
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: baseURL,
		Token:   token,
	}
}

// Invite resolves an invite code to its guild and channel names.
func (c *Client) Invite(code string) (*Invite, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/invites/"+code, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolving invite %s: %w", code, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("resolving invite %s: status %s", code, resp.Status)
	}

	j, err := simplejson.NewJson(body)
	if err != nil {
		return nil, fmt.Errorf("resolving invite %s: %w", code, err)
	}

	guildID, err := snowflake.Parse(j.GetPath("guild", "id").MustString())
	if err != nil {
		return nil, fmt.Errorf("invite %s carries invalid guild id: %w", code, err)
	}
	channelID, err := snowflake.Parse(j.GetPath("channel", "id").MustString())
	if err != nil {
		return nil, fmt.Errorf("invite %s carries invalid channel id: %w", code, err)
	}

	return &Invite{
		Code:        code,
		GuildID:     guildID,
		GuildName:   j.GetPath("guild", "name").MustString(),
		ChannelID:   channelID,
		ChannelName: j.GetPath("channel", "name").MustString(),
	}, nil
}

var invitePattern = regexp.MustCompile(`(?:discord\.gg/|discordapp\.com/invite/)([\w-]+)`)

// InviteCodes extracts every invite code present in message content.
func InviteCodes(content string) []string {
	var codes []string
	for _, match := range invitePattern.FindAllStringSubmatch(content, -1) {
		codes = append(codes, match[1])
	}
	return codes
}
