package combat

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abhisek/mathquest/internal/problemgen"
	"github.com/abhisek/mathquest/internal/stages"
)

func testProblems(n int) []problemgen.Problem {
	ps := make([]problemgen.Problem, n)
	for i := range ps {
		a, b := i+2, 3
		ps[i] = problemgen.Problem{
			ID:            fmt.Sprintf("t-q%d", i),
			Text:          fmt.Sprintf("%d + %d = ?", a, b),
			Operand1:      a,
			Operand2:      b,
			Operation:     problemgen.OpAdd,
			CorrectAnswer: a + b,
			Options:       []int{a + b + 1, a + b, a + b + 2, a + b + 3},
		}
	}
	return ps
}

func testStage(id string, hp, problems int) *stages.Stage {
	return &stages.Stage{
		Template: stages.Template{
			ID:          id,
			Name:        "Test Stage",
			Mode:        problemgen.ModeAdd,
			NumProblems: problems,
			EnemyName:   "Dummy",
			EnemySprite: "🎯",
			EnemyMaxHP:  hp,
			Companion:   stages.Companion{Name: "Helper", Advice: "Add carefully!", Sprite: "✨"},
		},
		Problems: testProblems(problems),
	}
}

// fixedRules removes the random damage bonus so damage is exact.
func fixedRules() Rules {
	r := DefaultRules()
	r.MaxRandomBonus = 0
	return r
}

func newSession(t *testing.T, stage *stages.Stage, stats PlayerStats, rules Rules) *Session {
	t.Helper()
	s, err := New(stage, stats, rules, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func answer(s *Session) int { return s.Problem().CorrectAnswer }

func wrong(s *Session) int { return s.Problem().CorrectAnswer + 1 }

func TestNew_NoProblems(t *testing.T) {
	stage := testStage("s1", 40, 0)
	if _, err := New(stage, DefaultPlayerStats(), DefaultRules(), rand.New(rand.NewPCG(1, 1))); !errors.Is(err, ErrNoProblems) {
		t.Errorf("New with empty stage: err = %v, want ErrNoProblems", err)
	}
	if _, err := New(nil, DefaultPlayerStats(), DefaultRules(), rand.New(rand.NewPCG(1, 1))); !errors.Is(err, ErrNoProblems) {
		t.Errorf("New with nil stage: err = %v, want ErrNoProblems", err)
	}
}

func TestSubmit_CorrectFocusCapped(t *testing.T) {
	stats := DefaultPlayerStats()
	stats.Focus = 80
	s := newSession(t, testStage("s1", 100, 3), stats, DefaultRules())

	r, ok := s.Submit(answer(s))
	if !ok || r.Kind != KindCorrect {
		t.Fatalf("Submit(correct) = %+v, %v", r, ok)
	}
	if s.Stats().Focus != 100 {
		t.Errorf("focus = %d, want 100", s.Stats().Focus)
	}
	if r.EnemyDamage < 15 || r.EnemyDamage > 20 {
		t.Errorf("damage = %d, want 15..20", r.EnemyDamage)
	}
	if s.EnemyHP() != 100-r.EnemyDamage {
		t.Errorf("enemy HP = %d, want %d", s.EnemyHP(), 100-r.EnemyDamage)
	}
	if s.Phase() != PhaseProcessing {
		t.Errorf("phase = %v, want processing", s.Phase())
	}
}

func TestSubmit_Reentrancy(t *testing.T) {
	s := newSession(t, testStage("s1", 100, 3), DefaultPlayerStats(), fixedRules())
	if _, ok := s.Submit(answer(s)); !ok {
		t.Fatal("first submit ignored")
	}
	hp := s.EnemyHP()
	if _, ok := s.Submit(answer(s)); ok {
		t.Error("second submit during processing was accepted")
	}
	if _, ok := s.Timeout(); ok {
		t.Error("timeout during processing was accepted")
	}
	if s.EnemyHP() != hp {
		t.Errorf("enemy HP changed during processing: %d -> %d", hp, s.EnemyHP())
	}
}

func TestSubmit_PowerStrike(t *testing.T) {
	stats := DefaultPlayerStats()
	stats.Focus = 100
	s := newSession(t, testStage("s1", 100, 3), stats, fixedRules())

	if _, ok := s.ArmPowerStrike(); !ok {
		t.Fatal("ArmPowerStrike at max focus was ignored")
	}
	if _, ok := s.ArmPowerStrike(); ok {
		t.Error("ArmPowerStrike accepted twice")
	}
	r, _ := s.Submit(answer(s))
	if r.EnemyDamage != 24 {
		t.Errorf("power strike damage = %d, want floor(15*1.6)=24", r.EnemyDamage)
	}
	if !r.PowerStrike || s.Armed() {
		t.Error("power strike should be released and disarmed")
	}
	if s.Stats().Focus != 0 {
		t.Errorf("focus = %d, want 0 after strike", s.Stats().Focus)
	}
}

func TestArmPowerStrike_RequiresMaxFocus(t *testing.T) {
	stats := DefaultPlayerStats()
	stats.Focus = 99
	s := newSession(t, testStage("s1", 100, 3), stats, fixedRules())
	if _, ok := s.ArmPowerStrike(); ok {
		t.Error("ArmPowerStrike accepted below max focus")
	}
}

func TestArmPowerStrike_KeepsTimerRunning(t *testing.T) {
	stats := DefaultPlayerStats()
	stats.Focus = 100
	s := newSession(t, testStage("s1", 100, 3), stats, fixedRules())
	s.ArmPowerStrike()
	s.Tick()
	if s.TimeLeft() != 24 {
		t.Errorf("time left = %d, want 24", s.TimeLeft())
	}
	if s.Phase() != PhaseAwaitingAnswer {
		t.Errorf("arming consumed the turn: phase %v", s.Phase())
	}
}

func TestSubmit_WrongCancelsStrike(t *testing.T) {
	stats := DefaultPlayerStats()
	stats.Focus = 100
	s := newSession(t, testStage("s1", 100, 3), stats, fixedRules())
	s.ArmPowerStrike()

	r, _ := s.Submit(wrong(s))
	if !r.PowerStrike || s.Armed() || s.Stats().Focus != 0 {
		t.Errorf("wrong answer should cancel the strike: armed=%v focus=%d", s.Armed(), s.Stats().Focus)
	}
}

func TestSubmit_WrongKeepsFocusWhenNotArmed(t *testing.T) {
	stats := DefaultPlayerStats()
	stats.Focus = 60
	s := newSession(t, testStage("s1", 100, 3), stats, fixedRules())
	s.Submit(wrong(s))
	if s.Stats().Focus != 60 {
		t.Errorf("focus = %d, want 60", s.Stats().Focus)
	}
}

func TestSubmit_DamageResist(t *testing.T) {
	tests := []struct {
		value    int
		wantDmg  int
		resisted int
	}{
		{1, 14, 1},
		{5, 10, 5},
		{100, 1, 14},
	}
	for _, tc := range tests {
		stage := testStage("s2", 100, 3)
		stage.SpecialAbility = stages.AbilityDamageResist
		stage.AbilityValue = tc.value
		s := newSession(t, stage, DefaultPlayerStats(), fixedRules())

		r, _ := s.Submit(answer(s))
		if r.EnemyDamage != tc.wantDmg || r.Resisted != tc.resisted {
			t.Errorf("resist %d: damage=%d resisted=%d, want %d/%d",
				tc.value, r.EnemyDamage, r.Resisted, tc.wantDmg, tc.resisted)
		}
	}
}

func TestSubmit_Win(t *testing.T) {
	s := newSession(t, testStage("s1", 15, 3), DefaultPlayerStats(), fixedRules())
	r, _ := s.Submit(answer(s))
	if r.Outcome != OutcomeWin {
		t.Fatalf("outcome = %q, want win", r.Outcome)
	}
	if s.Outcome() != OutcomeNone {
		t.Error("outcome should not be final before Continue")
	}
	s.Continue()
	if s.Phase() != PhaseWon || s.Outcome() != OutcomeWin {
		t.Errorf("phase = %v outcome = %q after Continue", s.Phase(), s.Outcome())
	}
	res := s.Result()
	if res.ScoreDelta != 15 {
		t.Errorf("score delta = %d, want 15 (10 + quick 5)", res.ScoreDelta)
	}
}

func TestSubmit_OnDefeatDamage(t *testing.T) {
	t.Run("survives", func(t *testing.T) {
		stage := testStage("s10", 10, 3)
		stage.SpecialAbility = stages.AbilityOnDefeatDamage
		stage.AbilityValue = 20
		s := newSession(t, stage, DefaultPlayerStats(), fixedRules())
		r, _ := s.Submit(answer(s))
		if r.Outcome != OutcomeWin || r.LastStand != 20 || s.Stats().HP != 80 {
			t.Errorf("outcome=%q lastStand=%d hp=%d", r.Outcome, r.LastStand, s.Stats().HP)
		}
	})
	t.Run("falls", func(t *testing.T) {
		stage := testStage("s11", 10, 3)
		stage.SpecialAbility = stages.AbilityOnDefeatDamage
		stage.AbilityValue = 25
		stats := DefaultPlayerStats()
		stats.HP = 20
		s := newSession(t, stage, stats, fixedRules())
		r, _ := s.Submit(answer(s))
		if r.Outcome != OutcomeLose || s.Stats().HP != 0 {
			t.Errorf("outcome=%q hp=%d, want lose at 0", r.Outcome, s.Stats().HP)
		}
		s.Continue()
		if s.Outcome() != OutcomeLose {
			t.Errorf("final outcome = %q, want lose", s.Outcome())
		}
	})
}

func TestSubmit_WrongKillsPlayer(t *testing.T) {
	stats := DefaultPlayerStats()
	stats.HP = 10
	stats.Score = 3
	s := newSession(t, testStage("s1", 100, 3), stats, DefaultRules())

	r, _ := s.Submit(wrong(s))
	if s.Stats().HP != 0 {
		t.Errorf("hp = %d, want 0", s.Stats().HP)
	}
	if s.Stats().Score != 0 || r.ScoreChange != -3 {
		t.Errorf("score = %d change = %d, want floored at 0", s.Stats().Score, r.ScoreChange)
	}
	if r.Outcome != OutcomeLose {
		t.Errorf("outcome = %q, want lose", r.Outcome)
	}
	s.Continue()
	if s.Phase() != PhaseLost {
		t.Errorf("phase = %v, want lost", s.Phase())
	}
}

func TestSubmit_OutOfProblems(t *testing.T) {
	s := newSession(t, testStage("s1", 100, 2), DefaultPlayerStats(), fixedRules())
	s.Submit(answer(s))
	s.Continue()
	if s.Index() != 1 {
		t.Fatalf("index = %d, want 1", s.Index())
	}
	r, _ := s.Submit(answer(s))
	if r.Outcome != OutcomeLose {
		t.Errorf("last problem with enemy alive: outcome = %q, want lose", r.Outcome)
	}
	if !strings.Contains(r.Messages[len(r.Messages)-1], "still stands") {
		t.Errorf("unexpected final message %q", r.Messages[len(r.Messages)-1])
	}
}

func TestContinue_ResetsProblem(t *testing.T) {
	s := newSession(t, testStage("s1", 100, 3), DefaultPlayerStats(), fixedRules())
	if s.Continue() {
		t.Error("Continue accepted while awaiting answer")
	}
	token := s.Token()
	s.Tick()
	s.Tick()
	s.Submit(wrong(s))
	if !s.Continue() {
		t.Fatal("Continue ignored while processing")
	}
	if s.Index() != 1 || s.TimeLeft() != 25 || s.Phase() != PhaseAwaitingAnswer {
		t.Errorf("index=%d timeLeft=%d phase=%v", s.Index(), s.TimeLeft(), s.Phase())
	}
	if s.Token() == token {
		t.Error("token should change with the problem")
	}
	if s.Last() != nil {
		t.Error("last resolution should clear on a new problem")
	}
}

func TestTick_TimeoutOnce(t *testing.T) {
	stats := DefaultPlayerStats()
	stats.Score = 1
	s := newSession(t, testStage("s1", 100, 3), stats, fixedRules())

	fired := 0
	for i := 0; i < 40; i++ {
		if r, ok := s.Tick(); ok {
			fired++
			if r.Kind != KindTimeout || r.PlayerDamage != 10 {
				t.Errorf("timeout resolution = %+v", r)
			}
		}
	}
	if fired != 1 {
		t.Fatalf("timeout fired %d times, want 1", fired)
	}
	if s.Stats().HP != 90 || s.Stats().Score != 0 {
		t.Errorf("after timeout hp=%d score=%d, want 90/0", s.Stats().HP, s.Stats().Score)
	}
	if s.TimeLeft() != 0 {
		t.Errorf("time left = %d, want 0", s.TimeLeft())
	}
}

func TestTick_FiresAfterTimerSeconds(t *testing.T) {
	s := newSession(t, testStage("s1", 100, 3), DefaultPlayerStats(), fixedRules())
	for i := 1; i < 25; i++ {
		if _, ok := s.Tick(); ok {
			t.Fatalf("timeout fired early at tick %d", i)
		}
	}
	if _, ok := s.Tick(); !ok {
		t.Error("timeout did not fire on tick 25")
	}
}

func TestQuickBonusAndMilestones(t *testing.T) {
	tests := []struct {
		stage string
		ticks int
		want  int
	}{
		{"s1", 0, 15},
		{"s1", 7, 15},
		{"s1", 8, 10},
		{"s5", 0, 25},
		{"s10", 10, 20},
		{"s15", 0, 35},
		{"s15", 20, 30},
	}
	for _, tc := range tests {
		s := newSession(t, testStage(tc.stage, 500, 3), DefaultPlayerStats(), fixedRules())
		for i := 0; i < tc.ticks; i++ {
			s.Tick()
		}
		r, _ := s.Submit(answer(s))
		if r.ScoreChange != tc.want {
			t.Errorf("%s after %ds: score +%d, want +%d", tc.stage, tc.ticks, r.ScoreChange, tc.want)
		}
	}
}

func TestUseHint(t *testing.T) {
	stats := DefaultPlayerStats()
	stats.Hints = 1
	stats.Score = 1
	s := newSession(t, testStage("s1", 100, 3), stats, fixedRules())

	if _, ok := s.UseHint(); !ok {
		t.Fatal("UseHint ignored")
	}
	if s.Stats().Hints != 0 || s.Stats().Score != 0 {
		t.Errorf("hints=%d score=%d, want 0/0", s.Stats().Hints, s.Stats().Score)
	}
	snap := s.Snapshot()
	if snap.RevealedOption != 1 {
		t.Errorf("revealed option = %d, want 1", snap.RevealedOption)
	}
	if _, ok := s.UseHint(); ok {
		t.Error("UseHint accepted with zero charges")
	}
}

func TestUseHint_BlockedWhileArmed(t *testing.T) {
	stats := DefaultPlayerStats()
	stats.Focus = 100
	s := newSession(t, testStage("s1", 100, 3), stats, fixedRules())
	s.ArmPowerStrike()
	if _, ok := s.UseHint(); ok {
		t.Error("UseHint accepted while power strike armed")
	}
	if _, ok := s.UsePotion(); ok {
		t.Error("UsePotion accepted while power strike armed")
	}
}

func TestUsePotion(t *testing.T) {
	stats := DefaultPlayerStats()
	stats.HP = 85
	s := newSession(t, testStage("s1", 100, 3), stats, fixedRules())

	r, ok := s.UsePotion()
	if !ok || r.Healed != 15 || s.Stats().HP != 100 || s.Stats().Potions != 1 {
		t.Errorf("potion: ok=%v healed=%d hp=%d potions=%d", ok, r.Healed, s.Stats().HP, s.Stats().Potions)
	}
	if _, ok := s.UsePotion(); ok {
		t.Error("UsePotion accepted at full HP")
	}
	if snap := s.Snapshot(); snap.PlayerAnim != AnimHeal {
		t.Errorf("player animation = %q, want heal", snap.PlayerAnim)
	}
}

func TestRetreat(t *testing.T) {
	s := newSession(t, testStage("s1", 100, 3), DefaultPlayerStats(), fixedRules())
	s.UseHint()
	r, ok := s.Retreat()
	if !ok || r.Outcome != OutcomeRetreat {
		t.Fatalf("Retreat = %+v, %v", r, ok)
	}
	res := s.Result()
	if res.Outcome != OutcomeRetreat || res.ScoreDelta != 0 {
		t.Errorf("result = %+v, want retreat with zero delta", res)
	}
	if res.Stats.Hints != 2 {
		t.Errorf("retreat should keep spent items: hints = %d", res.Stats.Hints)
	}
}

func TestRetreat_IgnoredWhileProcessing(t *testing.T) {
	s := newSession(t, testStage("s1", 100, 3), DefaultPlayerStats(), fixedRules())
	s.Submit(wrong(s))
	if _, ok := s.Retreat(); ok {
		t.Error("Retreat accepted while processing")
	}
}

func TestSnapshot(t *testing.T) {
	s := newSession(t, testStage("s1", 100, 3), DefaultPlayerStats(), fixedRules())
	snap := s.Snapshot()
	if snap.ProblemCount != 3 || snap.TimeLeft != 25 || snap.EnemyHP != 100 {
		t.Errorf("initial snapshot = %+v", snap)
	}
	if !strings.HasPrefix(snap.Message, "Problem 1/3") {
		t.Errorf("message = %q", snap.Message)
	}
	if !snap.CanUseHint || snap.CanUsePotion || snap.CanPowerStrike || !snap.CanRetreat {
		t.Errorf("action flags = %+v", snap)
	}

	s.Submit(wrong(s))
	snap = s.Snapshot()
	if snap.SelectedOption != 0 || snap.CorrectOption != 1 {
		t.Errorf("selected=%d correct=%d, want 0/1", snap.SelectedOption, snap.CorrectOption)
	}
	if snap.PlayerAnim != AnimShake || snap.EnemyAnim != AnimAttack {
		t.Errorf("animations = %q/%q", snap.PlayerAnim, snap.EnemyAnim)
	}
	if len(snap.Effects) != 1 || !snap.Effects[0].OnPlayer || snap.Effects[0].Amount != 12 {
		t.Errorf("effects = %+v", snap.Effects)
	}
}

func TestStatsInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	for trial := 0; trial < 50; trial++ {
		stats := DefaultPlayerStats()
		stats.Focus = rng.IntN(101)
		s, err := New(testStage("s14", 300, 8), stats, DefaultRules(), rng)
		if err != nil {
			t.Fatal(err)
		}
		for !s.Phase().Terminal() {
			switch rng.IntN(6) {
			case 0:
				s.Submit(answer(s))
			case 1:
				s.Submit(wrong(s))
			case 2:
				s.Tick()
			case 3:
				s.UsePotion()
			case 4:
				s.ArmPowerStrike()
			case 5:
				s.UseHint()
			}
			s.Continue()

			st := s.Stats()
			if st.HP < 0 || st.HP > st.MaxHP || st.Focus < 0 || st.Focus > st.MaxFocus ||
				st.Score < 0 || st.Hints < 0 || st.Potions < 0 || s.EnemyHP() < 0 {
				t.Fatalf("invariant broken: %+v enemy=%d", st, s.EnemyHP())
			}
		}
	}
}

func TestRetryHP(t *testing.T) {
	tests := []struct{ max, want int }{{100, 75}, {90, 67}, {1, 0}}
	for _, tc := range tests {
		st := PlayerStats{MaxHP: tc.max}
		if got := st.RetryHP(); got != tc.want {
			t.Errorf("RetryHP(max %d) = %d, want %d", tc.max, got, tc.want)
		}
	}
}
