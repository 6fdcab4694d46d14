package nakama

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"adrenaline/internal/app"
	"adrenaline/internal/bot"
	"adrenaline/internal/config"
	"adrenaline/internal/domain"
	"adrenaline/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Lobby          *domain.MatchState
	Presences      map[string]runtime.Presence // UserId -> Presence for targeted messaging
	Engine         *app.Engine                 // nil until the first match starts
	Config         config.GameConfig
	MatchID        string
	Tick           int64
	Bots           map[string]*bot.Agent // UserId -> agent
	BotWaitUntil   int64                 // Tick when the pending bot answers
	LobbyWaitSince int64                 // Tick when the lobby started waiting for players

	seatTokens *app.SeatTokenService
	rng        *rand.Rand
	fallback   bot.Brain
}

// connectedHumans counts seated humans with a live presence.
func (ms *MatchState) connectedHumans() int {
	count := 0
	for _, m := range ms.Lobby.Members {
		if !m.IsBot && m.Connected {
			count++
		}
	}
	return count
}

// firstBot returns the seated bot with the lowest seat, or nil.
func (ms *MatchState) firstBot() *domain.Member {
	for _, m := range ms.Lobby.Seated() {
		if m.IsBot {
			return m
		}
	}
	return nil
}

// uniqueNickname returns name, suffixed with a number when already taken.
func (ms *MatchState) uniqueNickname(name string) string {
	if name == "" {
		name = "player"
	}
	candidate := name
	for i := 2; ; i++ {
		if _, taken := ms.Lobby.MemberByNickname(candidate); !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s%d", name, i)
	}
}

// pendingBot finds a bot with a question waiting, in turn order.
func (ms *MatchState) pendingBot() (*bot.Agent, app.Event, bool) {
	for _, m := range ms.Lobby.Seated() {
		if !m.IsBot {
			continue
		}
		ev, ok := ms.Engine.Pending(m.Nickname)
		if !ok {
			continue
		}
		agent, ok := ms.Bots[m.UserID]
		if !ok {
			continue
		}
		return agent, ev, true
	}
	return nil, app.Event{}, false
}

func (ms *MatchState) verifySeatToken(userID, token string) error {
	claims, err := ms.seatTokens.Verify(token)
	if err != nil {
		return err
	}
	if claims.UserID != userID || claims.MatchID != ms.MatchID {
		return app.ErrInvalidSeatToken
	}
	return nil
}

type matchHandler struct {
	publisher ports.MatchPublisher
	accounts  ports.AccountPort
}

func newMatchHandler(publisher ports.MatchPublisher, accounts ports.AccountPort) *matchHandler {
	return &matchHandler{publisher: publisher, accounts: accounts}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	cfg := config.GetGameConfig()
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if err := config.ApplyEnv(&cfg, env); err != nil {
			logger.Warn("MatchInit: Ignoring runtime env overrides: %v", err)
			cfg = config.GetGameConfig()
		}
	}
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	fallback, _ := bot.NewBrain(bot.LevelRandom, rng)
	state := &MatchState{
		Lobby:      domain.NewMatchState(),
		Presences:  make(map[string]runtime.Presence),
		Config:     cfg,
		MatchID:    matchID,
		Bots:       make(map[string]*bot.Agent),
		seatTokens: app.NewSeatTokenService(cfg.SeatTokenSecret, cfg.SeatTokenIssuer, cfg.SeatTokenTTL()),
		rng:        rng,
		fallback:   fallback,
	}

	label, err := labelString(state.Lobby)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	logger.Debug("MatchInit: Match %s created (skulls=%d, frenzy=%t, bots=%t)", matchID, cfg.Skulls, cfg.Frenzy, cfg.BotsEnabled)
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	ms, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	userID := presence.GetUserId()

	if m, seated := ms.Lobby.Members[userID]; seated {
		if ms.Lobby.Phase != domain.PhasePlaying {
			return ms, true, ""
		}
		if m.Connected {
			return ms, false, "already connected"
		}
		if err := ms.verifySeatToken(userID, metadata[MetadataSeatToken]); err != nil {
			logger.Warn("MatchJoinAttempt: Rejecting reconnect of %s: %v", userID, err)
			return ms, false, "invalid seat token"
		}
		return ms, true, ""
	}

	if ms.Lobby.Phase == domain.PhasePlaying {
		return ms, false, "match in progress"
	}
	if len(ms.Lobby.Members) >= domain.MaxPlayers && ms.firstBot() == nil {
		return ms, false, "match full"
	}
	return ms, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	ms, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		ms.Presences[userID] = p

		if m, seated := ms.Lobby.Members[userID]; seated {
			m.Connected = true
			if ms.Lobby.Phase == domain.PhasePlaying {
				mh.reconnect(ctx, ms, dispatcher, logger, m)
			}
			continue
		}

		m := &domain.Member{
			UserID:    userID,
			Nickname:  ms.uniqueNickname(mh.displayName(ctx, logger, p)),
			Connected: true,
		}
		if !ms.Lobby.Seat(m) {
			b := ms.firstBot()
			if b == nil {
				logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", userID)
				continue
			}
			logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", b.Nickname, userID, b.Seat)
			ms.removeBot(b.UserID)
			ms.Lobby.Seat(m)
		}
		logger.Info("MatchJoin: %s seated as %s in seat %d", userID, m.Nickname, m.Seat)
	}

	mh.updateLabel(ms, dispatcher, logger)
	mh.broadcastLobby(ms, dispatcher, logger)
	return ms
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	ms, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(ms.Presences, userID)
		m, seated := ms.Lobby.Members[userID]
		if !seated {
			continue
		}
		if ms.Lobby.Phase == domain.PhasePlaying {
			// Keep the seat for a reconnect.
			m.Connected = false
			events, err := ms.Engine.Disconnect(m.Nickname)
			if err != nil {
				logger.Warn("MatchLeave: Disconnect of %s: %v", m.Nickname, err)
			}
			mh.dispatchEvents(ctx, ms, dispatcher, logger, events)
			continue
		}
		ms.Lobby.Unseat(userID)
		logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, m.Seat)
	}

	if ms.connectedHumans() == 0 {
		if ms.Lobby.Phase == domain.PhasePlaying {
			mh.publish(ctx, ms, logger, ports.MatchAborted, nil, "no human players left")
		}
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(ms, dispatcher, logger)
	mh.broadcastLobby(ms, dispatcher, logger)
	return ms
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	ms, ok := state.(*MatchState)
	if !ok {
		return state
	}

	ms.Tick = tick
	for _, msg := range messages {
		if msg.GetOpCode() == OpStartGame {
			mh.handleStartGame(ctx, ms, dispatcher, logger, msg)
			continue
		}
		mh.handleGameMessage(ctx, ms, dispatcher, logger, msg)
	}

	if ms.Config.BotsEnabled {
		mh.processBots(ctx, ms, dispatcher, logger)
	}
	return ms
}

func (mh *matchHandler) handleStartGame(ctx context.Context, ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	logger.Info("StartGame: Request received from %s (owner=%s, seated=%d)", senderID, ms.Lobby.OwnerUserID, len(ms.Lobby.Members))

	if senderID != ms.Lobby.OwnerUserID {
		logger.Warn("StartGame: User %s tried to start game but is not owner", senderID)
		mh.sendError(ms, dispatcher, logger, senderID, 403, "only the owner can start the match")
		return
	}
	if ms.Lobby.Phase == domain.PhasePlaying {
		logger.Warn("StartGame: Match already in progress")
		return
	}
	players := ms.Lobby.SeatedNicknames()
	if len(players) < ms.Config.MinPlayers {
		logger.Warn("StartGame: Cannot start with %d players. Need at least %d.", len(players), ms.Config.MinPlayers)
		mh.sendError(ms, dispatcher, logger, senderID, 409, fmt.Sprintf("need at least %d players", ms.Config.MinPlayers))
		return
	}

	engine, err := app.NewEngine(logger, app.Config{Players: players, Skulls: ms.Config.Skulls, Frenzy: ms.Config.Frenzy}, ms.rng)
	if err != nil {
		logger.Error("StartGame: Failed to create engine: %v", err)
		mh.sendError(ms, dispatcher, logger, senderID, 500, err.Error())
		return
	}
	events, err := engine.Start()
	if err != nil {
		logger.Error("StartGame: Failed to start match: %v", err)
		return
	}

	ms.Engine = engine
	ms.Lobby.Phase = domain.PhasePlaying
	ms.BotWaitUntil = 0
	ms.LobbyWaitSince = 0
	mh.updateLabel(ms, dispatcher, logger)
	mh.publish(ctx, ms, logger, ports.MatchStarted, nil, "")

	for _, m := range ms.Lobby.Seated() {
		if !m.IsBot {
			mh.sendSeatToken(ms, dispatcher, logger, m)
		}
	}
	mh.dispatchEvents(ctx, ms, dispatcher, logger, events)
	logger.Info("StartGame: Match started with %d players.", len(players))
}

func (mh *matchHandler) handleGameMessage(ctx context.Context, ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	m, seated := ms.Lobby.Members[senderID]
	if !seated {
		logger.Warn("handleGameMessage: Message from unseated user %s", senderID)
		return
	}
	if ms.Lobby.Phase != domain.PhasePlaying || ms.Engine == nil {
		mh.sendError(ms, dispatcher, logger, senderID, 409, app.ErrMatchNotStarted.Error())
		return
	}

	message, err := decodeMessage(msg.GetOpCode(), msg.GetData())
	if err != nil {
		logger.Warn("handleGameMessage: Bad message from %s (op %d): %v", m.Nickname, msg.GetOpCode(), err)
		mh.sendError(ms, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	message.Player = m.Nickname

	events, err := ms.Engine.ProcessEvent(message)
	mh.dispatchEvents(ctx, ms, dispatcher, logger, events)
	if err == nil || errors.Is(err, app.ErrMatchAborted) {
		return
	}

	logger.Warn("handleGameMessage: %s failed %s: %v", m.Nickname, message.Kind, err)
	mh.sendError(ms, dispatcher, logger, senderID, errorCode(err), err.Error())
	if reask, err := ms.Engine.Reask(m.Nickname); err == nil {
		mh.dispatchEvents(ctx, ms, dispatcher, logger, reask)
	}
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, app.ErrInvalidChoice):
		return 400
	case errors.Is(err, app.ErrNotYourTurn):
		return 403
	default:
		return 409
	}
}

func (mh *matchHandler) reconnect(ctx context.Context, ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, m *domain.Member) {
	events, err := ms.Engine.Reconnect(m.Nickname)
	if err != nil {
		logger.Warn("MatchJoin: Reconnect of %s: %v", m.Nickname, err)
	}
	mh.dispatchEvents(ctx, ms, dispatcher, logger, events)
	mh.sendSeatToken(ms, dispatcher, logger, m)
	if reask, err := ms.Engine.Reask(m.Nickname); err == nil {
		mh.dispatchEvents(ctx, ms, dispatcher, logger, reask)
	}
}

func (mh *matchHandler) displayName(ctx context.Context, logger runtime.Logger, p runtime.Presence) string {
	if mh.accounts == nil {
		return p.GetUsername()
	}
	name, err := mh.accounts.DisplayName(ctx, p.GetUserId())
	if err != nil {
		logger.Warn("MatchJoin: Could not read display name of %s: %v", p.GetUserId(), err)
	}
	if name == "" {
		return p.GetUsername()
	}
	return name
}

func (mh *matchHandler) processBots(ctx context.Context, ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if ms.Lobby.Phase != domain.PhasePlaying {
		mh.autoFill(ms, dispatcher, logger)
		return
	}
	if ms.Engine == nil || ms.Engine.Ended() {
		return
	}

	agent, ev, ok := ms.pendingBot()
	if !ok {
		ms.BotWaitUntil = 0
		return
	}
	if ms.BotWaitUntil == 0 {
		minDelay, maxDelay := ms.Config.BotMinDelaySeconds, ms.Config.BotMaxDelaySeconds
		delay := ms.rng.Intn(maxDelay-minDelay+1) + minDelay
		ms.BotWaitUntil = ms.Tick + int64(delay)
		logger.Debug("processBots: Bot %s will answer %s at tick %d (current %d)", agent.Name, ev.Kind, ms.BotWaitUntil, ms.Tick)
	}
	if ms.Tick < ms.BotWaitUntil {
		return
	}
	ms.BotWaitUntil = 0

	events, err := bot.Respond(logger, ms.Engine, agent, ms.fallback, ev)
	mh.dispatchEvents(ctx, ms, dispatcher, logger, events)
	if err != nil {
		logger.Error("processBots: %v", err)
	}
}

// autoFill seats bots up to the minimum player count once a human has
// waited BotAutoFillDelaySeconds in the lobby.
func (mh *matchHandler) autoFill(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if ms.connectedHumans() == 0 || len(ms.Lobby.Members) >= ms.Config.MinPlayers {
		ms.LobbyWaitSince = 0
		return
	}
	if ms.LobbyWaitSince == 0 {
		ms.LobbyWaitSince = ms.Tick
		logger.Debug("processBots: Lobby short of players, starting auto-fill timer.")
		return
	}
	if ms.Tick-ms.LobbyWaitSince < int64(ms.Config.BotAutoFillDelaySeconds) {
		return
	}
	ms.LobbyWaitSince = 0

	added := false
	for i := 0; i < 2*domain.MaxPlayers && len(ms.Lobby.Members) < ms.Config.MinPlayers; i++ {
		identity := bot.GetBotIdentity(i)
		if _, seated := ms.Lobby.Members[identity.UserID]; seated || identity.UserID == "" {
			continue
		}
		if err := ms.addBot(identity, bot.BotLevel(ms.Config.BotLevel)); err != nil {
			logger.Error("processBots: Failed to create bot agent for %s: %v", identity.UserID, err)
			continue
		}
		logger.Info("processBots: Added bot %s (%s)", identity.DisplayName, identity.UserID)
		added = true
	}
	if added {
		mh.updateLabel(ms, dispatcher, logger)
		mh.broadcastLobby(ms, dispatcher, logger)
	}
}

// addBot seats identity. The identity's own level wins over fallbackLevel.
func (ms *MatchState) addBot(identity bot.BotIdentity, fallbackLevel bot.BotLevel) error {
	level := identity.Level
	if level == "" {
		level = fallbackLevel
	}
	m := &domain.Member{
		UserID:    identity.UserID,
		Nickname:  ms.uniqueNickname(identity.DisplayName),
		IsBot:     true,
		Connected: true,
	}
	agent, err := bot.NewAgent(identity.UserID, m.Nickname, level, ms.rng)
	if err != nil {
		return err
	}
	if !ms.Lobby.Seat(m) {
		return errors.New("no free seat")
	}
	ms.Bots[identity.UserID] = agent
	return nil
}

func (ms *MatchState) removeBot(userID string) {
	ms.Lobby.Unseat(userID)
	delete(ms.Bots, userID)
}

// dispatchEvents sends events to their recipients and reacts to the end of
// the match.
func (mh *matchHandler) dispatchEvents(ctx context.Context, ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(ms, dispatcher, logger, ev)
		switch ev.Kind {
		case app.EventMatchEnded:
			p, _ := ev.Payload.(app.MatchEndedPayload)
			mh.publish(ctx, ms, logger, ports.MatchEnded, matchResults(ms.Lobby, p.Leaderboard), p.Reason)
			mh.finish(ms, dispatcher, logger)
		case app.EventMatchAborted:
			p, _ := ev.Payload.(app.MatchAbortedPayload)
			mh.publish(ctx, ms, logger, ports.MatchAborted, nil, p.Reason)
			mh.finish(ms, dispatcher, logger)
		}
	}
}

// broadcastEvent encodes one event and sends it to its recipients.
func (mh *matchHandler) broadcastEvent(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	op, data, err := encodeEvent(ev)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, nickname := range ev.Recipients {
			m, ok := ms.Lobby.MemberByNickname(nickname)
			if !ok {
				continue
			}
			if p, ok := ms.Presences[m.UserID]; ok {
				recipients = append(recipients, p)
			}
		}
		// Bots and disconnected players: never fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(op, data, recipients, nil, true); err != nil {
		logger.Error("Failed to send event %v: %v", ev.Kind, err)
	}
}

// finish returns the match to a restartable state. Humans who left during
// the match lose their seat now.
func (mh *matchHandler) finish(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	ms.Lobby.Phase = domain.PhaseEnded
	ms.BotWaitUntil = 0
	for _, m := range ms.Lobby.Seated() {
		if !m.IsBot && !m.Connected {
			ms.Lobby.Unseat(m.UserID)
		}
	}
	logger.Info("Match %s finished.", ms.MatchID)
	mh.updateLabel(ms, dispatcher, logger)
	mh.broadcastLobby(ms, dispatcher, logger)
}

// matchResults flattens the leaderboard; tied players share a rank.
func matchResults(lobby *domain.MatchState, leaderboard []domain.LeaderboardSlot) []ports.PlayerResult {
	var out []ports.PlayerResult
	for i, slot := range leaderboard {
		for _, nickname := range slot.Players {
			r := ports.PlayerResult{Nickname: nickname, Points: slot.Points, Rank: i + 1}
			if m, ok := lobby.MemberByNickname(nickname); ok {
				r.UserID = m.UserID
				r.Bot = m.IsBot
			}
			out = append(out, r)
		}
	}
	return out
}

func (mh *matchHandler) publish(ctx context.Context, ms *MatchState, logger runtime.Logger, kind string, results []ports.PlayerResult, reason string) {
	if mh.publisher == nil {
		return
	}
	n := ports.MatchNotification{
		MatchID:  ms.MatchID,
		Kind:     kind,
		Players:  ms.Lobby.SeatedNicknames(),
		Results:  results,
		Reason:   reason,
		Occurred: time.Now().UTC(),
	}
	if err := mh.publisher.Publish(ctx, n); err != nil {
		logger.Error("Failed to publish %s for match %s: %v", kind, ms.MatchID, err)
	}
}

func (mh *matchHandler) broadcastLobby(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	players := make([]interface{}, 0, len(ms.Lobby.Members))
	for _, m := range ms.Lobby.Seated() {
		players = append(players, map[string]interface{}{
			"userId":    m.UserID,
			"nickname":  m.Nickname,
			"seat":      m.Seat,
			"isOwner":   m.UserID == ms.Lobby.OwnerUserID,
			"isBot":     m.IsBot,
			"connected": m.Connected,
		})
	}
	data, err := marshalMap(map[string]interface{}{
		"phase":      string(ms.Lobby.Phase),
		"players":    players,
		"minPlayers": ms.Config.MinPlayers,
		"tick":       ms.Tick,
	})
	if err != nil {
		logger.Error("Failed to marshal lobby state: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpLobbyState, data, nil, nil, true)
}

// sendSeatToken privately hands m the token needed to reclaim their seat.
func (mh *matchHandler) sendSeatToken(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, m *domain.Member) {
	presence, ok := ms.Presences[m.UserID]
	if !ok {
		return
	}
	token, err := ms.seatTokens.GenerateToken(app.SeatClaims{UserID: m.UserID, MatchID: ms.MatchID, Nickname: m.Nickname})
	if err != nil {
		logger.Warn("Cannot issue seat token to %s: %v", m.Nickname, err)
		return
	}
	data, err := marshalMap(map[string]interface{}{"token": token, "matchId": ms.MatchID, "nickname": m.Nickname})
	if err != nil {
		logger.Error("Failed to marshal seat token: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpSeatToken, data, []runtime.Presence{presence}, nil, true)
}

// sendError sends a game error to a specific user.
func (mh *matchHandler) sendError(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := ms.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	data, err := marshalMap(map[string]interface{}{"code": code, "message": message})
	if err != nil {
		logger.Error("Failed to marshal game error: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true)
}

func labelString(lobby *domain.MatchState) (string, error) {
	label := domain.ComputeLabel(lobby)
	b, err := marshalMap(map[string]interface{}{
		"open":    label.Open,
		"game":    label.Game,
		"phase":   label.Phase,
		"players": label.Players,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (mh *matchHandler) updateLabel(ms *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := labelString(ms.Lobby)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated (grace %ds)", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
