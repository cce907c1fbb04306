package constants

// Metric yang dibandingkan dengan ambang lulus.
const (
	MetricRataRata   = "rata_rata"
	MetricKelancaran = "kelancaran"
)

// ThresholdRule adalah satu baris tabel ambang kelulusan. Nilai >= Threshold
// menghasilkan PassLabel, selain itu FailLabel.
type ThresholdRule struct {
	Metric    string  `yaml:"metric" json:"metric"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
	PassLabel string  `yaml:"pass" json:"pass"`
	FailLabel string  `yaml:"fail" json:"fail"`
}

// Score memilih nilai yang dibandingkan sesuai Metric aturan.
func (r ThresholdRule) Score(rataRata, kelancaran float64) float64 {
	if r.Metric == MetricKelancaran {
		return kelancaran
	}
	return rataRata
}

func (r ThresholdRule) Passed(score float64) bool {
	return score >= r.Threshold
}

func (r ThresholdRule) Label(score float64) string {
	if r.Passed(score) {
		return r.PassLabel
	}
	return r.FailLabel
}

// Nama aturan di tabel ambang.
const (
	RuleSetoran = "setoran"
	RuleTahapan = UjianTahapan
	RuleManzil  = UjianManzil
	RuleTasmi   = UjianTasmi
)

// Nilai per layar dipertahankan apa adanya (70/80/88/90); belum ada
// keputusan untuk menyatukannya.
func DefaultThresholds() map[string]ThresholdRule {
	return map[string]ThresholdRule{
		RuleSetoran: {Metric: MetricRataRata, Threshold: 70, PassLabel: SetoranLancar, FailLabel: SetoranUlangi},
		RuleTahapan: {Metric: MetricRataRata, Threshold: 80, PassLabel: StatusLulus, FailLabel: StatusTidakLulus},
		RuleManzil:  {Metric: MetricKelancaran, Threshold: 88, PassLabel: SetoranLancar, FailLabel: SetoranUlangi},
		RuleTasmi:   {Metric: MetricRataRata, Threshold: 90, PassLabel: StatusLulus, FailLabel: StatusTidakLulus},
	}
}

// Batas bawah predikat penilaian periodik.
var predikatBands = []struct {
	Min   float64
	Label string
}{
	{90, "A"},
	{80, "B"},
	{70, "C"},
}

// Predikat: A (>=90), B (>=80), C (>=70), selain itu D.
func Predikat(rataRata float64) string {
	for _, b := range predikatBands {
		if rataRata >= b.Min {
			return b.Label
		}
	}
	return "D"
}
