package mcpapi

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ToolGetLeagueSettings = "get_league_settings"
	ToolGetStandings      = "get_standings"
	ToolGetTeam           = "get_team"
	ToolGetRoster         = "get_roster"
	ToolGetFreeAgents     = "get_free_agents"
	ToolGetPlayerInfo     = "get_player_info"
	ToolModifyLineup      = "modify_lineup"
)

// ToolInfo is one entry of the tool catalogue.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Info struct {
	Name    string
	Version string
}

type Server struct {
	mcp       *mcp.Server
	catalogue []ToolInfo
}

func NewServer(info Info, h *Handler) *Server {
	if info.Name == "" {
		info.Name = "espn-fantasy-mcp"
	}
	s := &Server{
		mcp:       mcp.NewServer(&mcp.Implementation{Name: info.Name, Version: info.Version}, nil),
		catalogue: make([]ToolInfo, 0, 7),
	}

	addTool(s, &mcp.Tool{
		Name:        ToolGetLeagueSettings,
		Description: "League settings: size, schedule, scoring type, lineup slots, stat categories and the raw settings sections.",
	}, h.GetLeagueSettings)
	addTool(s, &mcp.Tool{
		Name:        ToolGetStandings,
		Description: "Teams of the league ordered by standing, with records and owners.",
	}, h.GetStandings)
	addTool(s, &mcp.Tool{
		Name:        ToolGetTeam,
		Description: "One team by its 0-based team_id.",
	}, h.GetTeam)
	addTool(s, &mcp.Tool{
		Name:        ToolGetRoster,
		Description: "Roster of one team with each player's lineup slot, plus the league's slot capacities.",
	}, h.GetRoster)
	addTool(s, &mcp.Tool{
		Name:        ToolGetFreeAgents,
		Description: "Free agents and waiver players sorted by percent owned, optionally filtered by position.",
	}, h.GetFreeAgents)
	addTool(s, &mcp.Tool{
		Name:        ToolGetPlayerInfo,
		Description: "Look up a player by name across rosters and free agents. Misspelled names return ranked suggestions.",
	}, h.GetPlayerInfo)
	addTool(s, &mcp.Tool{
		Name: ToolModifyLineup,
		Description: "Move players between lineup slots. With confirm=false (default) the moves are validated against the live roster " +
			"and previewed without changes. With confirm=true they are re-validated and submitted once.",
	}, h.ModifyLineup)

	return s
}

func addTool[T any](s *Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	s.catalogue = append(s.catalogue, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(s.mcp, tool, handler)
}

// Catalogue lists the registered tools in registration order.
func (s *Server) Catalogue() []ToolInfo {
	return append([]ToolInfo(nil), s.catalogue...)
}

func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// RunStdio serves one client over stdin and stdout until ctx is done or
// the client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves the streamable HTTP transport with JSON responses.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}
