package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/nodesearch/ctxutil"
	"github.com/ncobase/nodesearch/data"
	"github.com/ncobase/nodesearch/net/resp"
	"github.com/ncobase/nodesearch/nodesearch"
	"github.com/ncobase/nodesearch/validator"
)

type strategyView struct {
	Identifier string `json:"identifier"`
	Position   int    `json:"position"`
	Condition  string `json:"condition"`
	HasRequest bool   `json:"hasRequest"`
}

// health reports 503 until a service is set or while a check fails
func (s *Server) health(c *gin.Context) {
	report := data.Health(c.Request.Context(), s.opts.Checks...)
	if s.Service() == nil {
		report["status"] = "starting"
	}
	if report["status"] != "healthy" {
		resp.WithStatusCode(c.Writer, http.StatusServiceUnavailable, report)
		return
	}
	resp.Success(c.Writer, report)
}

// searchQuery holds the /api/search query parameters
type searchQuery struct {
	Term          string   `form:"term"`
	NodeTypes     []string `form:"nodeTypes"`
	StartingPoint string   `form:"startingPoint" validate:"omitempty,startswith=/"`
	Workspace     string   `form:"workspace" validate:"omitempty,max=255"`
}

// search handles GET /api/search?term=&nodeTypes=&startingPoint=&workspace=
func (s *Server) search(c *gin.Context) {
	svc := s.Service()
	if svc == nil || s.opts.Contexts == nil {
		resp.Unavailable(c.Writer, "search service not ready")
		return
	}

	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		var errs validator.Errors
		if errors.As(err, &errs) {
			resp.BadRequest(c.Writer, "invalid search parameters", errs)
			return
		}
		resp.BadRequest(c.Writer, err.Error())
		return
	}

	workspace := q.Workspace
	if workspace == "" {
		workspace = s.opts.DefaultWorkspace
	}
	ctx := ctxutil.SetWorkspace(c.Request.Context(), workspace)
	sc := s.opts.Contexts(workspace)

	var startingPoint *nodesearch.Node
	if q.StartingPoint != "" {
		node, err := sc.GetNode(ctx, nil, q.StartingPoint)
		if err != nil {
			s.opts.Logger.Errorf(ctx, "Failed to resolve starting point %s: %v", q.StartingPoint, err)
			resp.ServerError(c.Writer, "failed to resolve starting point")
			return
		}
		if node == nil {
			resp.NotFound(c.Writer, "starting point not found")
			return
		}
		startingPoint = node
	}

	nodes, err := svc.FindByProperties(ctx, q.Term, nodeTypes(q.NodeTypes), sc, startingPoint)
	if err != nil {
		s.opts.Logger.Errorf(ctx, "Node search failed: %v", err)
		resp.ServerError(c.Writer, "search failed")
		return
	}

	resp.Success(c.Writer, nodes)
}

// strategies lists configured strategies in evaluation order
func (s *Server) strategies(c *gin.Context) {
	svc := s.Service()
	if svc == nil {
		resp.Unavailable(c.Writer, "search service not ready")
		return
	}

	views := []strategyView{}
	for _, st := range svc.Strategies() {
		views = append(views, strategyView{
			Identifier: st.Identifier,
			Position:   st.Position,
			Condition:  st.Condition,
			HasRequest: st.HasTemplate(),
		})
	}
	resp.Success(c.Writer, views)
}

// nodeTypes accepts repeated and comma separated values
func nodeTypes(values []string) []string {
	var out []string
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}
