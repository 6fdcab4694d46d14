package nakama

import (
	"errors"
	"fmt"
	"math"

	"adrenaline/internal/app"
	"adrenaline/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	ErrUnknownOpCode = errors.New("unknown op code")
	ErrBadPayload    = errors.New("malformed payload")
)

// decodeMessage turns a client frame into an engine message. The frame body
// is a JSON object; absent fields keep their zero value.
func decodeMessage(op int64, data []byte) (app.Message, error) {
	kind, ok := messageKinds[op]
	if !ok {
		return app.Message{}, fmt.Errorf("%w: %d", ErrUnknownOpCode, op)
	}
	m := app.Message{Kind: kind}
	if len(data) == 0 {
		return m, nil
	}
	body := &structpb.Struct{}
	if err := protojson.Unmarshal(data, body); err != nil {
		return app.Message{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	f := body.GetFields()

	var err error
	if m.Index, err = intField(f, "index"); err != nil {
		return app.Message{}, err
	}
	if m.Discard, err = intField(f, "discard"); err != nil {
		return app.Message{}, err
	}
	if f["subtype"].GetStringValue() == "REQUEST" {
		m.Subtype = app.SubtypeRequest
	}
	if c, ok := f["coordinates"]; ok {
		cf := c.GetStructValue().GetFields()
		if m.Coordinates.Row, err = intField(cf, "row"); err != nil {
			return app.Message{}, err
		}
		if m.Coordinates.Col, err = intField(cf, "col"); err != nil {
			return app.Message{}, err
		}
	}
	for _, v := range f["powerups"].GetListValue().GetValues() {
		n, err := toInt(v)
		if err != nil {
			return app.Message{}, err
		}
		m.Powerups = append(m.Powerups, n)
	}
	for _, v := range f["price"].GetListValue().GetValues() {
		a, ok := domain.ParseAmmoType(v.GetStringValue())
		if !ok {
			return app.Message{}, fmt.Errorf("%w: ammo %q", ErrBadPayload, v.GetStringValue())
		}
		m.Price = append(m.Price, a)
	}
	return m, nil
}

func intField(f map[string]*structpb.Value, key string) (int, error) {
	v, ok := f[key]
	if !ok {
		return 0, nil
	}
	return toInt(v)
}

func toInt(v *structpb.Value) (int, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, fmt.Errorf("%w: expected an integer", ErrBadPayload)
	}
	return int(n.NumberValue), nil
}

// encodeEvent serializes an engine event as {"kind": ..., ...payload}.
func encodeEvent(ev app.Event) (int64, []byte, error) {
	op, ok := eventOpCode(ev.Kind)
	if !ok {
		return 0, nil, fmt.Errorf("no op code for %s", ev.Kind)
	}
	body, err := payloadToMap(ev.Payload)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", ev.Kind, err)
	}
	body["kind"] = string(ev.Kind)
	data, err := marshalMap(body)
	if err != nil {
		return 0, nil, err
	}
	return op, data, nil
}

func marshalMap(body map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(body)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

func payloadToMap(payload any) (map[string]interface{}, error) {
	switch p := payload.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case app.AskPayload:
		return askToMap(p), nil
	case app.MatchStartedPayload:
		return map[string]interface{}{"players": stringList(p.Players), "skulls": p.Skulls, "frenzy": p.Frenzy}, nil
	case app.TurnStartedPayload:
		return map[string]interface{}{"player": p.Player, "status": p.Status, "remaining": p.Remaining}, nil
	case app.KillShotPayload:
		return map[string]interface{}{"victim": p.Victim, "shooter": p.Shooter, "overkill": p.Overkill}, nil
	case app.FrenzyStartedPayload:
		return map[string]interface{}{"turnsLeft": p.TurnsLeft}, nil
	case app.PlayerConnectionPayload:
		return map[string]interface{}{"player": p.Player}, nil
	case app.MatchEndedPayload:
		return map[string]interface{}{"leaderboard": leaderboardList(p.Leaderboard), "reason": p.Reason}, nil
	case app.MatchAbortedPayload:
		return map[string]interface{}{"reason": p.Reason}, nil
	case app.BoardSnapshot:
		return snapshotToMap(p), nil
	default:
		return nil, fmt.Errorf("unsupported payload %T", payload)
	}
}

func askToMap(p app.AskPayload) map[string]interface{} {
	out := map[string]interface{}{
		"questionId": p.QuestionID,
		"player":     p.Player,
		"question":   p.Question.Question,
	}
	if p.Question.Kind == domain.CoordinatesQuestion {
		coords := make([]interface{}, 0, len(p.Question.Coordinates))
		for _, c := range p.Question.Coordinates {
			coords = append(coords, coordinatesToMap(c))
		}
		out["coordinates"] = coords
	} else {
		out["options"] = stringList(p.Question.Options)
	}
	if p.UseCase != "" {
		out["useCase"] = p.UseCase
	}
	if len(p.Price) > 0 {
		out["price"] = priceList(p.Price)
		out["canAffordWithAmmo"] = p.CanAffordWithAmmo
	}
	if p.CanActivatePowerup {
		out["canActivatePowerup"] = true
	}
	if p.CanReload {
		out["canReload"] = true
	}
	return out
}

func snapshotToMap(s app.BoardSnapshot) map[string]interface{} {
	players := make([]interface{}, 0, len(s.Players))
	for _, p := range s.Players {
		weapons := make([]interface{}, 0, len(p.Weapons))
		for _, w := range p.Weapons {
			weapons = append(weapons, map[string]interface{}{"name": w.Name, "loaded": w.Loaded})
		}
		marks := make(map[string]interface{}, len(p.Marks))
		for shooter, n := range p.Marks {
			marks[shooter] = n
		}
		ps := map[string]interface{}{
			"nickname":   p.Nickname,
			"connected":  p.Connected,
			"turnStatus": p.TurnStatus,
			"status":     p.Status,
			"ammo": map[string]interface{}{
				domain.AmmoRed.String():    p.Ammo[domain.AmmoRed],
				domain.AmmoBlue.String():   p.Ammo[domain.AmmoBlue],
				domain.AmmoYellow.String(): p.Ammo[domain.AmmoYellow],
			},
			"weapons":  weapons,
			"powerups": p.Powerups,
			"damage":   stringList(p.Damage),
			"marks":    marks,
			"points":   p.Points,
			"deaths":   p.Deaths,
			"flipped":  p.Flipped,
		}
		if p.Position != nil {
			ps["position"] = coordinatesToMap(*p.Position)
		}
		players = append(players, ps)
	}
	kills := make([]interface{}, 0, len(s.KillShots))
	for _, k := range s.KillShots {
		kills = append(kills, map[string]interface{}{"shooter": k.Shooter, "overkill": k.Overkill})
	}
	return map[string]interface{}{
		"players":           players,
		"queue":             stringList(s.Queue),
		"skulls":            s.Skulls,
		"killShots":         kills,
		"frenzy":            s.Frenzy,
		"turnsLeftInFrenzy": s.TurnsLeftInFrenzy,
	}
}

func leaderboardList(slots []domain.LeaderboardSlot) []interface{} {
	out := make([]interface{}, 0, len(slots))
	for _, s := range slots {
		out = append(out, map[string]interface{}{"players": stringList(s.Players), "points": s.Points})
	}
	return out
}

func coordinatesToMap(c domain.Coordinates) map[string]interface{} {
	return map[string]interface{}{"row": c.Row, "col": c.Col}
}

func priceList(p domain.Price) []interface{} {
	out := make([]interface{}, 0, len(p))
	for _, a := range p {
		out = append(out, a.String())
	}
	return out
}

func stringList(in []string) []interface{} {
	out := make([]interface{}, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}
