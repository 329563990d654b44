package config

// Bank identifies the branch the process serves.
type Bank struct {
	Name       string `envconfig:"NAME" default:"Amr Bank" validate:"required"`
	BranchCode string `envconfig:"BRANCH_CODE" default:"BR001" validate:"required"`
}

// Log configures the process logger. Level follows charmbracelet/log:
// -4 debug, 0 info, 4 warn, 8 error.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0" validate:"gte=-4,lte=12"`
	Format     string `envconfig:"FORMAT" default:"text" validate:"oneof=json text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[bank]"`
}

type Metrics struct {
	Namespace string `envconfig:"NAMESPACE" default:"bank" validate:"required"`
}

// Report controls terminal colouring: auto colours only when stdout is a terminal.
type Report struct {
	Color string `envconfig:"COLOR" default:"auto" validate:"oneof=auto always never"`
}

type App struct {
	Env     string   `envconfig:"APP_ENV" default:"development"`
	Bank    *Bank    `envconfig:"BANK"`
	Log     *Log     `envconfig:"LOG"`
	Metrics *Metrics `envconfig:"METRICS"`
	Report  *Report  `envconfig:"REPORT"`
}
