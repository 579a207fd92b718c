package detect_test

import (
	"testing"

	"github.com/unohee/ci-templates/pkg/config"
	"github.com/unohee/ci-templates/pkg/detect"
	"github.com/unohee/ci-templates/pkg/models"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Resolve(nil, config.Overrides{Patterns: "feature,program,arbitrage"})
	if err != nil {
		t.Fatalf("config.Resolve: %v", err)
	}
	return cfg
}

func lineCtx(text string) detect.LineContext {
	return detect.LineContext{
		File: "src/features.py",
		Line: 1,
		Text: text,
		Code: detect.StripComment(text),
	}
}

func TestSyntheticFeatureRule(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)

	tests := []struct {
		name string
		line string
		want int
	}{
		{"Uniform To Feature", "feature_x = np.random.uniform(0, 1, 100)", 1},
		{"Normal To Feature", "features = np.random.normal(0, 1, size=n)", 1},
		{"Randn To Program Var", "program_score = np.random.randn(10)", 1},
		{"Stdlib Random", "arbitrage_gap = random.uniform(0, 5)", 1},
		{"Generic Rand", "feature_vec = torch.rand(64)", 1},
		{"Column Assignment", `df["feature_x"] = np.random.random(len(df))`, 1},
		{"Numpy Longform", "feature_y = numpy.random.rand(3)", 1},
		{"Non Feature Target", "noise = np.random.uniform(0, 1)", 0},
		{"Feature From Real Data", "feature_x = compute_from_api(raw)", 0},
		{"Comparison Not Assignment", "if feature_x == np.random.uniform(0, 1):", 0},
		{"Choice Is Not Fabrication", "feature_x = np.random.choice(values)", 0},
	}

	rules := detect.DefaultRules(cfg)
	var synthetic detect.Rule
	for _, r := range rules {
		if r.ID() == models.RuleSyntheticFeature {
			synthetic = r
		}
	}
	if synthetic == nil {
		t.Fatal("synthetic-feature rule not registered")
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := synthetic.Check(lineCtx(tc.line))
			if len(got) != tc.want {
				t.Fatalf("Check(%q) = %d findings, want %d", tc.line, len(got), tc.want)
			}
			if tc.want == 1 && got[0].Severity != models.SeverityCritical {
				t.Errorf("severity = %s, want CRITICAL", got[0].Severity)
			}
		})
	}
}

func TestExceptionHidingRule(t *testing.T) {
	t.Parallel()

	rule := detect.ExceptionHidingRule{}

	tests := []struct {
		name  string
		text  string
		after []string
		want  int
	}{
		{"Inline Except Pass", "try: compute() except: pass", nil, 1},
		{"Bare Except Then Pass", "except:", []string{"    pass", ""}, 1},
		{"Broad Exception Then Pass", "except Exception:", []string{"    pass"}, 1},
		{"Aliased Broad Handler", "except Exception as e:", []string{"    pass"}, 1},
		{"Pass At Block End", "    except:", []string{"        pass", "def next_fn():"}, 1},
		{"Narrow Type", "except ValueError:", []string{"    pass"}, 0},
		{"Body Logs", "except:", []string{"    logging.exception('boom')"}, 0},
		{"Body Pass Then More", "except:", []string{"    pass", "    retry()"}, 0},
		{"Reraise", "except Exception:", []string{"    raise"}, 0},
		{"No Except", "x = compute()", nil, 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx := lineCtx(tc.text)
			ctx.After = tc.after
			got := rule.Check(ctx)
			if len(got) != tc.want {
				t.Fatalf("Check(%q) = %d findings, want %d", tc.text, len(got), tc.want)
			}
			if tc.want == 1 && got[0].Severity != models.SeverityCritical {
				t.Errorf("severity = %s, want CRITICAL", got[0].Severity)
			}
		})
	}
}

func TestMagicNumberRule(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)

	var magic detect.Rule
	for _, r := range detect.DefaultRules(cfg) {
		if r.ID() == models.RuleMagicNumber {
			magic = r
		}
	}

	tests := []struct {
		name string
		line string
		want int
	}{
		{"Leading Coefficient", "feature_score = 0.6 * raw_value", 1},
		{"Trailing Coefficient", "feature_score = raw_value * 1.5", 1},
		{"Additive Coefficient", "feature_bias = base + 3", 1},
		{"Integer Coefficient", "program_weight = 2 * signal", 1},
		{"Non Feature Target", "score = 0.6 * raw_value", 0},
		{"No Literal", "feature_score = a * b", 0},
		{"Call Args Only", "feature_x = np.random.uniform(0, 1, 100)", 0},
		{"Plain Constant", "feature_dim = 128", 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := magic.Check(lineCtx(tc.line))
			if len(got) != tc.want {
				t.Fatalf("Check(%q) = %d findings, want %d", tc.line, len(got), tc.want)
			}
			if tc.want == 1 && got[0].Severity != models.SeverityWarning {
				t.Errorf("severity = %s, want WARNING", got[0].Severity)
			}
		})
	}
}

func TestFakeSuccessRule(t *testing.T) {
	t.Parallel()

	rule := detect.FakeSuccessRule{}

	tests := []struct {
		name   string
		text   string
		before []string
		want   int
	}{
		{"Unconditional Done", `print("done")`, nil, 1},
		{"Korean Done", `print("학습 완료")`, nil, 1},
		{"Logger Success", `    logger.info("training success")`, []string{"def train():"}, 1},
		{"FString", `print(f"done: {n} rows")`, nil, 1},
		{"Guarded By If", `    print("done")`, []string{"if result.ok:"}, 0},
		{"Guarded By Assert", `print("done")`, []string{"assert result.ok"}, 0},
		{"Guarded By While", `    print("success")`, []string{"while not converged:"}, 0},
		{"No Success Phrase", `print("loading data")`, nil, 0},
		{"Not A Print", `status = "done"`, nil, 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx := lineCtx(tc.text)
			ctx.Before = tc.before
			got := rule.Check(ctx)
			if len(got) != tc.want {
				t.Fatalf("Check(%q) = %d findings, want %d", tc.text, len(got), tc.want)
			}
		})
	}
}

func TestRandomSamplingRule(t *testing.T) {
	t.Parallel()

	rule := detect.RandomSamplingRule{}

	tests := []struct {
		name string
		line string
		want int
	}{
		{"Numpy Choice", "picked = np.random.choice(values, 10)", 1},
		{"Faker", "fake = faker.Faker()", 1},
		{"Plain Uniform", "x = np.random.uniform(0, 1)", 0},
		{"Unrelated", "x = compute()", 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := rule.Check(lineCtx(tc.line))
			if len(got) != tc.want {
				t.Fatalf("Check(%q) = %d findings, want %d", tc.line, len(got), tc.want)
			}
		})
	}
}

func TestTodoPassRule(t *testing.T) {
	t.Parallel()

	rule := detect.TodoPassRule{}

	tests := []struct {
		name string
		line string
		want int
	}{
		{"Todo With Pass", "    pass  # TODO: implement scoring", 1},
		{"Todo In Comment Only", "# TODO: implement scoring", 0},
		{"Pass Without Todo", "    pass", 0},
		{"Passthrough Word", "passthrough = True  # TODO later", 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := rule.Check(lineCtx(tc.line))
			if len(got) != tc.want {
				t.Fatalf("Check(%q) = %d findings, want %d", tc.line, len(got), tc.want)
			}
		})
	}
}
