package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Config    string `help:"Path to a config file (default: .hledger.yaml in the working or home directory)." type:"path"`
	Telemetry bool   `help:"Show timing telemetry for operations."`

	cfg *Config
}

// LoadConfig resolves and caches the YAML config. A missing file is not an
// error unless --config named it explicitly.
func (g *Globals) LoadConfig() (*Config, error) {
	if g.cfg == nil {
		cfg, err := ResolveConfig(g.Config)
		if err != nil {
			return nil, err
		}
		g.cfg = cfg
	}
	return g.cfg, nil
}

type Commands struct {
	Globals

	Check    CheckCmd    `cmd:"" help:"Parse and validate a journal file."`
	Print    PrintCmd    `cmd:"" help:"Print a journal in normalized form."`
	Balance  BalanceCmd  `cmd:"" help:"Show the account balance tree."`
	Register RegisterCmd `cmd:"" help:"Show postings with a running total."`
	Stats    StatsCmd    `cmd:"" help:"Show summary statistics for a journal."`
	Doctor   DoctorCmd   `cmd:"" help:"Doctor utilities for debugging journal files."`
}
