package model

// Specialization is one certification track with its own question bank.
type Specialization struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	PassThreshold float64 `json:"passThreshold"`
}

// specializations is the fixed registry of supported tracks. The pass
// threshold is the real exam's passing score.
var specializations = map[string]Specialization{
	"snowflake_pro":  {Code: "snowflake_pro", Name: "SnowPro Core", PassThreshold: 0.75},
	"snowflake_arch": {Code: "snowflake_arch", Name: "SnowPro Advanced Architect", PassThreshold: 0.75},
	"dbt":            {Code: "dbt", Name: "dbt Analytics Engineering", PassThreshold: 0.65},
	"google":         {Code: "google", Name: "Google Professional Data Engineer", PassThreshold: 0.70},
	"sql":            {Code: "sql", Name: "SQL Fundamentals", PassThreshold: 0.75},
}

// LookupSpecialization returns the registry entry for a code.
func LookupSpecialization(code string) (Specialization, bool) {
	s, ok := specializations[code]
	return s, ok
}

// Specializations lists all registered tracks.
func Specializations() []Specialization {
	out := make([]Specialization, 0, len(specializations))
	for _, s := range specializations {
		out = append(out, s)
	}
	return out
}
