package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"adrenaline/internal/app"
	"adrenaline/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// SeatTokenRequest carries the token a client wants refreshed.
type SeatTokenRequest struct {
	Token string `json:"token"`
}

// SeatTokenResponse is a fresh token for the same seat.
type SeatTokenResponse struct {
	Token   string `json:"token"`
	MatchID string `json:"match_id"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcSeatToken, rpcSeatToken)
}

// rpcSeatToken exchanges a still valid seat token for one with a new expiry,
// so a client that stays in a long match can always reconnect.
func rpcSeatToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("authentication required", 16)
	}

	var req SeatTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.Token == "" {
		return "", runtime.NewError("payload must carry a token", 3)
	}

	cfg := config.GetGameConfig()
	tokens := app.NewSeatTokenService(cfg.SeatTokenSecret, cfg.SeatTokenIssuer, cfg.SeatTokenTTL())
	claims, err := tokens.Verify(req.Token)
	if err != nil || claims.UserID != userID {
		logger.Warn("RpcSeatToken [User:%s]: rejected token: %v", userID, err)
		return "", runtime.NewError("invalid seat token", 7)
	}

	token, err := tokens.GenerateToken(claims)
	if err != nil {
		logger.Error("RpcSeatToken [User:%s]: %v", userID, err)
		return "", runtime.NewError("could not issue seat token", 13)
	}
	b, _ := json.Marshal(SeatTokenResponse{Token: token, MatchID: claims.MatchID})
	return string(b), nil
}
