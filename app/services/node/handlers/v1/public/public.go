// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/powledger/powledger/business/sys/validate"
	"github.com/powledger/powledger/business/web/errs"
	"github.com/powledger/powledger/foundation/blockchain/database"
	"github.com/powledger/powledger/foundation/blockchain/state"
	"github.com/powledger/powledger/foundation/events"
	"github.com/powledger/powledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide mining events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var newTx tx
	if err := web.Decode(r, &newTx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(newTx); err != nil {
		return err
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "from", newTx.From, "to", newTx.To, "amount", newTx.Amount)

	record, err := h.State.SubmitTransaction(newTx.record())
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status  string            `json:"status"`
		Tx      database.TxRecord `json:"tx"`
		Pending int               `json:"pending"`
	}{
		Status:  "transaction added to mempool",
		Tx:      record,
		Pending: h.State.QueryMempoolLength(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions in arrival order.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := h.State.RetrieveMempool()
	return web.Respond(ctx, w, txs, http.StatusOK)
}

// SignalMining signals the worker to start a mining operation.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.State.QueryMempoolLength() == 0 {
		return errs.NewTrusted(state.ErrNoTransactions, http.StatusBadRequest)
	}

	h.State.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Chain returns the full chain of blocks.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.RetrieveBlocks()

	out := make([]block, len(blocks))
	for i, blk := range blocks {
		out[i] = toBlock(blk)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// BlockByNumber returns the specified block.
func (h Handlers) BlockByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	num, err := strconv.ParseUint(web.Param(r, "number"), 10, 64)
	if err != nil {
		return errs.NewTrusted(errors.New("invalid block number"), http.StatusBadRequest)
	}

	blk, err := h.State.QueryBlockByNumber(num)
	if err != nil {
		return errs.NewTrusted(err, http.StatusNotFound)
	}

	return web.Respond(ctx, w, toBlock(blk), http.StatusOK)
}

// LatestBlock returns the current latest block.
func (h Handlers) LatestBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blk := h.State.RetrieveLatestBlock()
	return web.Respond(ctx, w, toBlock(blk), http.StatusOK)
}

// ValidateChain runs a full chain integrity check and reports the result.
func (h Handlers) ValidateChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := validity{Valid: true}

	if err := h.State.ValidateChain(); err != nil {
		resp.Valid = false
		resp.Reason = err.Error()

		var chainErr *database.ChainError
		if errors.As(err, &chainErr) {
			num := chainErr.Number
			resp.FailingBlock = &num
		}
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
