package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"todo-api/domain"
	"todo-api/query"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, q Querier, cmd Commander, sub Subscriber, ded Deduper, logger *log.Logger) {
	e.GET("/api/items", getItems(q, logger))
	e.POST("/api/commands", postCommands(cmd, ded))
	e.GET("/api/stream/:name", streamEvents(sub))
	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getItems(q Querier, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newItemsRequestMetrics(ctx, logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		params, parseErr := itemsParams(c)
		if parseErr != nil {
			metrics.SetErrorStage("invalid_order_by")
			err = c.String(http.StatusBadRequest, parseErr.Error())
			return err
		}
		metrics.SetParamsProvided(params)

		queryStart := time.Now()
		conn, queryErr := q.Items(params)
		metrics.ObserveQuery(time.Since(queryStart))
		if queryErr != nil {
			// Only validation failures come out of the engine; they
			// abort the whole query, no partial page.
			metrics.SetErrorStage("validation")
			err = c.String(http.StatusBadRequest, queryErr.Error())
			return err
		}
		metrics.SetItemsReturned(len(conn.Edges))
		metrics.SetTotalCount(conn.TotalCount)
		metrics.SetHasNextPage(conn.PageInfo.HasNextPage)

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, conn)
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

// itemsParams reads the query operation inputs. Malformed first and
// completed scalars are treated as absent rather than failing the
// request; only the orderBy inputs can make parsing fail.
func itemsParams(c echo.Context) (query.Params, error) {
	p := query.Params{After: c.QueryParam("after")}

	if v := strings.TrimSpace(c.QueryParam("first")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.First = &n
		}
	}
	if v := c.QueryParam("completed"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			p.Completed = &b
		}
	}
	for _, raw := range c.QueryParams()["orderBy"] {
		ob, err := parseOrderBy(raw)
		if err != nil {
			return query.Params{}, err
		}
		p.OrderBy = append(p.OrderBy, ob)
	}
	return p, nil
}

// parseOrderBy accepts "field", "field:asc" or "field:desc".
func parseOrderBy(raw string) (query.OrderBy, error) {
	field, dir, found := strings.Cut(raw, ":")
	ob := query.OrderBy{Field: field, Direction: query.Asc}
	if !found {
		return ob, nil
	}
	switch query.Direction(dir) {
	case query.Asc, query.Desc:
		ob.Direction = query.Direction(dir)
	default:
		return query.OrderBy{}, fmt.Errorf("invalid orderBy direction: %q", dir)
	}
	return ob, nil
}

func postCommands(cmd Commander, ded Deduper) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		lr := io.LimitReader(c.Request().Body, postCommandMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		reqs := make([]commandRequest, 0, 4)
		if err := dec.Decode(&reqs); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}

		results := make([]commandResult, 0, len(reqs))
		for i := range reqs {
			if reqs[i].IdempotencyKey == "" {
				reqs[i].IdempotencyKey = uuid.NewString()
			}
			key := reqs[i].IdempotencyKey

			added, err := ded.Add(ctx, key)
			if err != nil {
				// Deduplication is best effort: process the command
				// rather than fail the batch on a deduper outage.
				c.Logger().Errorf("dedupe add failed: %v", err)
			} else if !added {
				results = append(results, commandResult{
					IdempotencyKey: key,
					Error:          &domain.Error{Message: "command already processed", Code: domain.CodeDuplicate},
				})
				continue
			}
			results = append(results, dispatch(cmd, reqs[i]))
		}
		return c.JSON(http.StatusOK, commandsResponse{Results: results})
	}
}

// dispatch maps a command name to the matching processor call. An
// unknown name or an undecodable payload yields a per-command error, not
// a transport failure.
func dispatch(cmd Commander, req commandRequest) commandResult {
	res := commandResult{IdempotencyKey: req.IdempotencyKey}

	badPayload := func() commandResult {
		res.Error = &domain.Error{Message: "invalid payload for " + req.Type, Code: domain.CodeBadRequest}
		return res
	}

	switch req.Type {
	case cmdAddItem:
		var data addItemData
		if err := sonic.ConfigStd.Unmarshal(req.Data, &data); err != nil {
			return badPayload()
		}
		out := cmd.AddItem(data.Text)
		res.Error, res.Item = out.Error, out.Item
	case cmdDeleteItem:
		var data itemTargetData
		if err := sonic.ConfigStd.Unmarshal(req.Data, &data); err != nil {
			return badPayload()
		}
		out := cmd.DeleteItem(parseItemID(data.Item))
		res.Error, res.Item = out.Error, out.Item
	case cmdChangeTextItem:
		var data changeTextData
		if err := sonic.ConfigStd.Unmarshal(req.Data, &data); err != nil {
			return badPayload()
		}
		out := cmd.ChangeTextItem(parseItemID(data.Item), data.Text)
		res.Error, res.Item = out.Error, out.Item
	case cmdToggleItem:
		var data toggleItemData
		if err := sonic.ConfigStd.Unmarshal(req.Data, &data); err != nil {
			return badPayload()
		}
		out := cmd.ToggleItem(parseItemID(data.Item), data.Completed)
		res.Error, res.Item = out.Error, out.Item
	case cmdToggleItems:
		var data toggleItemsData
		if err := sonic.ConfigStd.Unmarshal(req.Data, &data); err != nil {
			return badPayload()
		}
		out := cmd.ToggleItems(parseItemIDs(data.Items), data.Completed)
		res.Error, res.Items = out.Error, out.Items
	case cmdDeleteCompleteItems:
		var data deleteItemsData
		if err := sonic.ConfigStd.Unmarshal(req.Data, &data); err != nil {
			return badPayload()
		}
		out := cmd.DeleteCompleteItems(parseItemIDs(data.Items))
		res.Error, res.Items = out.Error, out.Items
	default:
		res.Error = &domain.Error{Message: "unknown command type: " + req.Type, Code: domain.CodeBadRequest}
	}
	return res
}

func streamEvents(sub Subscriber) echo.HandlerFunc {
	return func(c echo.Context) error {
		topic, ok := subscriptionTopics[c.Param("name")]
		if !ok {
			return c.String(http.StatusNotFound, "unknown subscription")
		}
		c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
		c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
		c.Response().Header().Set("X-Accel-Buffering", "no")
		flusher, ok := c.Response().Writer.(http.Flusher)
		if !ok {
			return c.String(http.StatusInternalServerError, "stream unsupported")
		}

		ctx := c.Request().Context()
		ch := sub.Subscribe(ctx, topic)

		// Comment frame so clients and proxies see headers immediately.
		if _, err := c.Response().Write([]byte(": ok\n\n")); err != nil {
			return err
		}
		flusher.Flush()

		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-ch:
				if !ok {
					return nil
				}
				data, err := sonic.ConfigStd.Marshal(ev)
				if err != nil {
					c.Logger().Error(err)
					continue
				}
				if _, err := c.Response().Write([]byte("data: ")); err != nil {
					return err
				}
				if _, err := c.Response().Write(data); err != nil {
					return err
				}
				if _, err := c.Response().Write([]byte("\n\n")); err != nil {
					return err
				}
				flusher.Flush()
			}
		}
	}
}
