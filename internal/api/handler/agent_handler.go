package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arclab/arclab-api/internal/core/domain"
	"github.com/arclab/arclab-api/internal/core/ports"
)

// AgentHandler handles HTTP requests for agent CRUD and invocation.
type AgentHandler struct {
	agents ports.AgentService
	invoke ports.InvokeService
}

func NewAgentHandler(agents ports.AgentService, invoke ports.InvokeService) *AgentHandler {
	return &AgentHandler{agents: agents, invoke: invoke}
}

// Create handles POST /ai/create/:labId.
//
// @Summary      Create an agent inside a lab
// @Tags         agents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        labId  path      string              true  "Lab id"
// @Param        body   body      createAgentRequest  true  "Agent persona"
// @Success      201    {object}  agentResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Failure      409    {object}  errorResponse
// @Router       /ai/create/{labId} [post]
func (h *AgentHandler) Create(c echo.Context) error {
	var req createAgentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	agent, err := h.agents.Create(c.Request().Context(), ports.CreateAgentInput{
		OwnerUserID: userID,
		LabID:       c.Param("labId"),
		Name:        req.Name,
		Personality: req.Personality,
		Tone:        req.Tone,
		Voice:       req.Voice,
		Gender:      req.Gender,
		Description: req.Description,
		Behaviors:   req.Behaviors,
		Skills:      req.Skills,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toAgentResponse(agent))
}

// Get handles GET /ai/get/agent/:id. This route is public: agent profiles are
// readable without a session.
//
// @Summary      Get an agent by id
// @Tags         agents
// @Produce      json
// @Param        id  path      string  true  "Agent id"
// @Success      200  {object}  agentResponse
// @Failure      404  {object}  errorResponse
// @Router       /ai/get/agent/{id} [get]
func (h *AgentHandler) Get(c echo.Context) error {
	agent, err := h.agents.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAgentResponse(agent))
}

// ListByLab handles GET /ai/get/:labId.
//
// @Summary      List agents in a lab
// @Tags         agents
// @Produce      json
// @Security     BearerAuth
// @Param        labId  path      string  true  "Lab id"
// @Success      200    {object}  listAgentsResponse
// @Failure      401    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /ai/get/{labId} [get]
func (h *AgentHandler) ListByLab(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	agents, err := h.agents.ListByLab(c.Request().Context(), userID, c.Param("labId"))
	if err != nil {
		return err
	}

	data := make([]agentResponse, 0, len(agents))
	for i := range agents {
		data = append(data, toAgentResponse(&agents[i]))
	}
	return c.JSON(http.StatusOK, listAgentsResponse{Data: data})
}

// Delete handles DELETE /ai/delete/:id.
//
// @Summary      Delete an agent
// @Tags         agents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Agent id"
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /ai/delete/{id} [delete]
func (h *AgentHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.agents.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "deleted"})
}

// Invoke handles POST /ai/agent/:id, one conversation turn with an agent.
// Provider failures answer in character rather than erroring, so the chat
// experience stays unbroken.
//
// @Summary      Converse with an agent
// @Tags         agents
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Agent id"
// @Param        body  body      invokeRequest  true  "User prompt"
// @Success      200   {object}  invokeResponse
// @Failure      404   {object}  errorResponse
// @Router       /ai/agent/{id} [post]
func (h *AgentHandler) Invoke(c echo.Context) error {
	var req invokeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.invoke.Invoke(c.Request().Context(), c.Param("id"), req.Prompt)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, invokeResponse{
		Agent:    result.AgentName,
		Response: result.Text,
		Audio:    result.Audio,
		Degraded: result.Degraded,
	})
}

// Options handles GET /ai/options, the persona option tables used by the
// creation UI. Plain configuration data, served read-only.
//
// @Summary      List persona options
// @Tags         agents
// @Produce      json
// @Success      200  {object}  agentOptionsResponse
// @Router       /ai/options [get]
func (h *AgentHandler) Options(c echo.Context) error {
	return c.JSON(http.StatusOK, agentOptionsResponse{
		Personalities: domain.PersonalityOptions,
		Tones:         domain.ToneOptions,
		Voices:        domain.VoiceOptions,
		Skills:        domain.SkillOptions,
	})
}
