package models

//-- Section --

const (
	// prevents memory exhaustion by capping the size of files loaded for scanning.
	MaxSourceFileSize = 10 * 1024 * 1024 // 10 MB

	//  the scan found nothing blocking.
	VerdictPass = "PASS"
	//  the scan found at least one blocking finding.
	VerdictFail = "FAIL"

	// ExitPass signals a clean scan to the pre-commit hook and CI job.
	ExitPass = 0
	// ExitFail signals a blocking finding (CRITICAL, or WARNING under strict mode).
	ExitFail = 1
	// ExitConfig signals an invalid invocation: malformed pattern or no resolvable target.
	ExitConfig = 2

	//  a random-sampling call assigned to a feature-named variable.
	RuleSyntheticFeature = "synthetic-feature"
	//  a broad exception handler whose body is exactly pass.
	RuleExceptionHiding = "exception-hiding"
	//  a hardcoded numeric coefficient in a feature assignment.
	RuleMagicNumber = "magic-number"
	//  an unconditional success message in a print or log call.
	RuleFakeSuccess = "fake-success"
	//  a bare sampling or faker call outside exempt contexts.
	RuleRandomSampling = "random-sampling"
	//  a TODO comment next to a pass placeholder.
	RuleTodoPass = "todo-pass"

	// BS score weights per issue severity. The score normalizes issue
	// volume by the number of files scanned.
	WeightCritical = 10
	WeightWarning  = 3
	WeightInfo     = 1

	// EnvFeaturePatterns overrides the feature-name patterns (comma separated).
	EnvFeaturePatterns = "FAKE_DATA_FEATURE_PATTERNS"
	// EnvExcludePaths adds path globs to skip (comma separated).
	EnvExcludePaths = "FAKE_DATA_EXCLUDE_PATHS"

	// DefaultFeaturePatterns matches the variable names most often faked.
	DefaultFeaturePatterns = "feature,program,arbitrage"
)
