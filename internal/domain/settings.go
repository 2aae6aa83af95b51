package domain

// TTRThresholds controls when the dashboard flags a ticket. The warning
// and critical values are independently configurable and carry no
// ordering guarantee between them.
type TTRThresholds struct {
	WarningHours         float64 `json:"warningHours"`
	CriticalHours        float64 `json:"criticalHours"`
	DueSoonHours         float64 `json:"dueSoonHours"`
	NoUpdateAlertMinutes int     `json:"noUpdateAlertMinutes"`
}

// WhatsAppTemplates holds the raw user-editable template strings.
type WhatsAppTemplates struct {
	ShareTemplate  string `json:"shareTemplate"`
	UpdateTemplate string `json:"updateTemplate"`
}

// AppSettings is the process-wide configuration persisted as a JSON blob.
// It is replaced as a whole on save; partial-field updates do not exist.
type AppSettings struct {
	TTRThresholds     TTRThresholds      `json:"ttrThresholds"`
	CategoryTTR       map[string]float64 `json:"categoryTtr"`
	WhatsAppTemplates WhatsAppTemplates  `json:"whatsappTemplates"`
}

// Clone returns a deep copy so callers can mutate freely.
func (s AppSettings) Clone() AppSettings {
	out := s
	out.CategoryTTR = make(map[string]float64, len(s.CategoryTTR))
	for k, v := range s.CategoryTTR {
		out.CategoryTTR[k] = v
	}
	return out
}

// DropdownOptions are the user-editable enumerations backing form
// dropdowns. Each list is an open enumeration: values are validated
// against the configured list, with "Lainnya" as the explicit escape.
type DropdownOptions struct {
	HSA               []string `json:"hsa"`
	STO               []string `json:"sto"`
	ODC               []string `json:"odc"`
	StakeHolder       []string `json:"stakeHolder"`
	JenisPelanggan    []string `json:"jenisPelanggan"`
	Kategori          []string `json:"kategori"`
	LosNonLos         []string `json:"losNonLos"`
	ClassSite         []string `json:"classSite"`
	Tim               []string `json:"tim"`
	StatusTiket       []string `json:"statusTiket"`
	Compliance        []string `json:"compliance"`
	PermanenTemporer  []string `json:"permanenTemporer"`
	StatusAlatBerat   []string `json:"statusAlatBerat"`
	PenyebabGangguan  []string `json:"penyebabGangguan"`
	PerbaikanGangguan []string `json:"perbaikanGangguan"`
	Kendala           []string `json:"kendala"`
}
