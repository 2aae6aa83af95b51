package settings

import "github.com/sitiket/tiketops/internal/domain"

const defaultShareTemplate = `🎫 *TIKET HARI INI*
━━━━━━━━━━━━━━━━━━
*[{{kategori}}] - {{siteCode}}*
*{{siteName}}*

📋 *INC:* {{incNumbers}}
📍 *Lokasi:* {{lokasiText}}
🗺️ *Koordinat:* {{koordinat}}
🔗 *Maps:* {{mapsLink}}
📏 *Jarak:* {{jarakKmRange}}

⏰ *Jam Open:* {{jamOpen}}
⏳ *Sisa TTR:* {{sisaTtr}}
📊 *Status:* {{status}}

━━━━━━━━━━━━━━━━━━
📝 Mohon TA update progress berkala.
🔗 Link Tiket: {{ticketLink}}`

const defaultUpdateTemplate = `📍 *UPDATE PROGRESS*
━━━━━━━━━━━━━━━━━━
🎫 Tiket: {{incNumbers}}
📍 Site: {{siteCode}} - {{siteName}}

⏰ Jam: {{currentTime}} WIB
📍 Posisi: [On the way/On site/...]
🔧 Aktivitas: [Apa yang dilakukan]
📋 Hasil: [Hasil ukur/temuan]
⚠️ Kendala: [Akses/material/cuaca/tidak ada]
➡️ Next Action & ETA: [Rencana + estimasi]
🆘 Butuh Bantuan: [Ya/Tidak + detail]
━━━━━━━━━━━━━━━━━━`

// DefaultSettings returns the hard-coded fallback configuration.
func DefaultSettings() domain.AppSettings {
	return domain.AppSettings{
		TTRThresholds: domain.TTRThresholds{
			WarningHours:         2,
			CriticalHours:        1,
			DueSoonHours:         2,
			NoUpdateAlertMinutes: 60,
		},
		CategoryTTR: map[string]float64{
			"premium":  2,
			"critical": 4,
			"major":    8,
			"minor":    16,
			"low":      24,
		},
		WhatsAppTemplates: domain.WhatsAppTemplates{
			ShareTemplate:  defaultShareTemplate,
			UpdateTemplate: defaultUpdateTemplate,
		},
	}
}

// DefaultOptions returns the built-in dropdown enumerations.
func DefaultOptions() domain.DropdownOptions {
	return domain.DropdownOptions{
		HSA:            []string{"MIS", "SLJ", "TBH", "DUM", "PKU", "BKN"},
		STO:            []string{"MIS", "SLJ", "TBH", "DUM", "PKU", "BKN"},
		ODC:            []string{"MIS", "SLJ", "TBH", "DUM", "PKU", "BKN"},
		StakeHolder:    []string{"TLKM", "OTHER"},
		JenisPelanggan: []string{"TSEL", "ISAT", "XL", "OTHER"},
		Kategori: []string{
			"CNQ", "MINOR [8]", "MINOR [12]", "MINOR [24]",
			"MAJOR", "CRITICAL", "LOW [24]",
		},
		LosNonLos: []string{"LOS", "NON LOS", "UNSPEC"},
		ClassSite: []string{"Platinum", "Gold", "Silver", "Bronze"},
		Tim:       []string{"Tim A", "Tim B", "Selat Panjang"},
		StatusTiket: []string{
			"OPEN", "ASSIGNED", "ONPROGRESS", "TEMPORARY",
			"WAITING_MATERIAL", "WAITING_ACCESS", "WAITING_COORDINATION", "CLOSED",
		},
		Compliance:       []string{"COMPLY", "NOT COMPLY"},
		PermanenTemporer: []string{"PERMANEN", "TEMPORER"},
		StatusAlatBerat:  []string{"TIDAK PERLU", "DIMINTA", "DALAM PROSES", "SELESAI"},
		PenyebabGangguan: []string{
			"Kabel Putus", "ODP Rusak", "Connector Rusak", "Power Off",
			"Gangguan Cuaca", "Gangguan Pihak Ketiga", "Lainnya",
		},
		PerbaikanGangguan: []string{
			"Splicing", "Ganti Connector", "Ganti ODP",
			"Recovery Kabel", "Reset Perangkat", "Lainnya",
		},
		Kendala: []string{
			"Tidak Ada Kendala", "Akses Lokasi Sulit", "Menunggu Material",
			"Menunggu Koordinasi", "Cuaca Buruk", "Alat Berat Belum Tersedia", "Lainnya",
		},
	}
}

// OptionOther is the explicit escape value accepted by every open
// enumeration regardless of the configured list.
const OptionOther = "Lainnya"

// Allowed validates a value against an open enumeration: it must be a
// configured option or the explicit escape value.
func Allowed(list []string, value string) bool {
	if value == OptionOther {
		return true
	}
	for _, opt := range list {
		if opt == value {
			return true
		}
	}
	return false
}
