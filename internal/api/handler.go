package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/sessioncal/internal/domain/dto"
	"github.com/guttosm/sessioncal/internal/service"
	"github.com/guttosm/sessioncal/internal/sessions"
)

// maxRollDates bounds how many dates a single roll request may carry.
const maxRollDates = 1000

// Handler provides HTTP handlers for the session calendar endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Delegate to the session service
//   - Translate service results into response DTOs
//   - Hand domain errors to middleware.ErrorHandler through c.Error
type Handler struct {
	svc service.SessionService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.SessionService): business operations over market calendars.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.SessionService) *Handler {
	return &Handler{svc: svc}
}

// RollSessions handles GET /api/v1/sessions/roll requests.
//
// Query Parameters:
//   - market (string, required): market name (e.g., "NYSE").
//   - date (string, required, repeatable): YYYY-MM-DD; comma separated lists are accepted too.
//
// Responses:
//   - 200 OK: every date with the session it rolls to.
//   - 400 Bad Request: missing or malformed parameters.
//   - 404 Not Found: unknown market.
//   - 422 Unprocessable Entity: a date precedes the first session of the calendar.
//
// RollSessions godoc
// @Summary      Roll dates to the previous session
// @Description  For each date returns the date itself when it is a session, otherwise the closest earlier session
// @Tags         sessions
// @Produce      json
// @Param        market  query     string    true  "Market" example(NYSE)
// @Param        date    query     []string  true  "Dates in YYYY-MM-DD" collectionFormat(multi)
// @Success      200     {object}  dto.RollResponse   "Success"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse  "Unknown market"
// @Failure      422     {object}  dto.ErrorResponse  "Date out of calendar range"
// @Failure      500     {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/sessions/roll [get]
func (h *Handler) RollSessions(c *gin.Context) {
	// ─── Validate "market" param ──────────────────────────────
	market, ok := requireMarket(c)
	if !ok {
		return
	}

	// ─── Parse "date" params ──────────────────────────────────
	var dates []time.Time
	for _, raw := range c.QueryArray("date") {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			d, err := time.Parse(sessions.DateLayout, s)
			if err != nil {
				c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date format, expected YYYY-MM-DD", err))
				return
			}
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("date is required", nil))
		return
	}
	if len(dates) > maxRollDates {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("too many dates, at most "+strconv.Itoa(maxRollDates)+" per request", nil))
		return
	}

	// ─── Query service (with request context) ─────────────────
	rolled, err := h.svc.Roll(c.Request.Context(), market, dates...)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRollResponse(market, rolled))
}

// ChunkSessions handles GET /api/v1/sessions/chunks requests.
//
// Query Parameters:
//   - market (string, required): market name (e.g., "NYSE").
//   - start, end (string, required): YYYY-MM-DD, both must be sessions.
//   - chunksize (int, optional): sessions per chunk; absent or 0 means the configured default.
//
// Responses:
//   - 200 OK: consecutive inclusive chunks covering [start, end].
//   - 400 Bad Request: malformed parameters, end before start, or a non-positive chunk size.
//   - 404 Not Found: unknown market, or start/end is not a session.
//
// ChunkSessions godoc
// @Summary      Split a session range into chunks
// @Description  Splits the sessions between start and end (inclusive) into consecutive chunks of at most chunksize sessions
// @Tags         sessions
// @Produce      json
// @Param        market     query     string  true   "Market" example(NYSE)
// @Param        start      query     string  true   "First session in YYYY-MM-DD" example(2017-01-03)
// @Param        end        query     string  true   "Last session in YYYY-MM-DD" example(2017-01-31)
// @Param        chunksize  query     int     false  "Sessions per chunk" example(10)
// @Success      200        {object}  dto.ChunksResponse  "Success"
// @Failure      400        {object}  dto.ErrorResponse   "Bad Request"
// @Failure      404        {object}  dto.ErrorResponse   "Not Found"
// @Failure      500        {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/sessions/chunks [get]
func (h *Handler) ChunkSessions(c *gin.Context) {
	market, ok := requireMarket(c)
	if !ok {
		return
	}

	// ─── Parse range ──────────────────────────────────────────
	start, ok := requireDate(c, "start")
	if !ok {
		return
	}
	end, ok := requireDate(c, "end")
	if !ok {
		return
	}

	// ─── Parse optional "chunksize" param ─────────────────────
	chunkSize := sessions.WholeRange
	if s := strings.TrimSpace(c.Query("chunksize")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid chunksize, expected an integer", err))
			return
		}
		chunkSize = n
	}

	chunks, err := h.svc.Chunks(c.Request.Context(), market, start, end, chunkSize)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ChunksResponse{
		Market:    market,
		Start:     start.Format(sessions.DateLayout),
		End:       end.Format(sessions.DateLayout),
		ChunkSize: chunkSize,
		Chunks:    dto.NewChunks(chunks),
	})
}

// ListCalendars godoc
// @Summary      List served calendars
// @Description  Returns each configured market with its first and last session and the session count
// @Tags         calendars
// @Produce      json
// @Success      200  {object}  dto.CalendarsResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/calendars [get]
func (h *Handler) ListCalendars(c *gin.Context) {
	summaries, err := h.svc.Calendars(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCalendarsResponse(summaries))
}

func requireMarket(c *gin.Context) (string, bool) {
	market := strings.ToUpper(strings.TrimSpace(c.Query("market")))
	if market == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("market is required", nil))
		return "", false
	}
	return market, true
}

func requireDate(c *gin.Context, name string) (time.Time, bool) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(name+" is required", nil))
		return time.Time{}, false
	}
	d, err := time.Parse(sessions.DateLayout, s)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid "+name+" format, expected YYYY-MM-DD", err))
		return time.Time{}, false
	}
	return d, true
}
