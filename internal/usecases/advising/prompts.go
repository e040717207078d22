package advising

import "fmt"

// Prompt templates and canned fallbacks. The assistant speaks Indonesian to
// the owner; every template mirrors what the dashboard sends today, so keep
// the wording stable unless the product copy changes.

const systemPromptFormat = `You are Therra AI, the smart business assistant embedded in the "TherraBiz" UMKM Dashboard.
You are talking to "%s", owner of the store "%s".
Your role is to help them analyze their sales data, suggest marketing strategies, and manage their business within TherraBiz.
Provide concise, actionable, and relevant business advice.
Keep answers under 150 words unless asked for details.
Use Indonesian language.`

const insightsPromptFormat = `Berikut adalah data penjualan UMKM saya dalam format JSON:
%s

Tolong berikan analisis singkat yang mencakup:
1. Ringkasan performa (Total omzet, rata-rata transaksi).
2. Analisis tren (naik/turun).
3. Produk unggulan.
4. 3 Rekomendasi strategi marketing konkret berdasarkan data ini.

Format jawaban dengan Markdown yang rapi.`

const whatIfPromptFormat = `Saya pemilik bisnis UMKM. Ini %d data transaksi terakhir saya: %s.

Skenario 'What-If': "%s"

Sebagai konsultan bisnis AI, simulasikan dampaknya terhadap omzet, profit, dan kepuasan pelanggan saya.
Berikan jawaban dalam poin-poin yang logis dan angka perkiraan (prediksi kasar) jika memungkinkan.
Gunakan Bahasa Indonesia.`

const tasksPromptFormat = `Berdasarkan data penjualan %d hari terakhir ini: %s.
Buatkan 5 tugas harian (To-Do List) yang spesifik dan actionable untuk hari ini agar penjualan meningkat.
Contoh: "Cek stok Kopi Susu", "Buat status WhatsApp promo".
Hanya berikan list JSON string array murni tanpa markdown code block. Contoh: ["Tugas 1", "Tugas 2"]`

const goalAdvicePromptFormat = `Target omzet bulan ini: Rp %.0f.
Pencapaian saat ini: Rp %.0f.
Sisa hari: %d hari.

Berikan satu paragraf pendek (maksimal 3 kalimat) berisi semangat dan satu tips taktis cepat untuk mengejar sisa target tersebut. Bahasa Indonesia, gaya motivator bisnis santai.`

const slowMovingPromptFormat = `Berikut adalah frekuensi penjualan produk saya: %s.

Identifikasi produk yang "Slow Moving" (jarang laku).
Berikan analisis dalam format JSON Array objek:
[
  { "product": "Nama Produk", "risk": "Tinggi/Sedang", "reason": "Alasan singkat", "suggestion": "Saran promo" }
]
Hanya return JSON valid tanpa markdown.`

const categorizePromptFormat = `Saya mengeluarkan uang sebesar Rp %.0f untuk keperluan: "%s".

Kategorikan pengeluaran ini ke dalam SALAH SATU kategori berikut:
- Operasional
- Bahan Baku
- Marketing
- Gaji
- Sewa & Utilitas
- Lainnya

Hanya jawab dengan satu kata kategori saja.`

const turnoverPromptFormat = `Inventory Turnover Rate (ITR) bisnis saya untuk periode %s adalah %.2f kali.

Apakah ini Cepat, Normal, atau Lambat untuk standar UMKM Ritel umum?
Berikan 2 kalimat saran singkat untuk memperbaiki atau mempertahankan angka ini.`

const promoPromptFormat = `Saya ingin membuat promo "%s" untuk produk "%s" dengan detail "%s".

Sebagai ahli strategi harga, berikan estimasi:
1. Potensi kenaikan volume penjualan (dalam %%).
2. Risiko penurunan margin profit (Rendah/Sedang/Tinggi).
3. Satu kalimat rekomendasi apakah promo ini layak dijalankan.

Jawab dalam format poin-poin singkat Bahasa Indonesia.`

// Fallbacks. Nothing here is fatal: every failure degrades to one of these.
const (
	quotaExceededMessage = "Maaf, Anda telah melebihi batas pesan harian (50 pesan). Silakan coba lagi besok."
	chatFallback         = "Maaf, saya tidak dapat memproses permintaan saat ini."
	insightsFallback     = "Tidak ada insight yang dapat dihasilkan."
	whatIfFallback       = "Gagal melakukan simulasi."
	goalAdviceFallback   = "Tetap semangat! Lakukan promosi kilat untuk mengejar target."
	turnoverFallback     = "Analisis tidak tersedia."
	promoFallback        = "Gagal melakukan estimasi promo."
)

var taskFallbacks = []string{
	"Cek inventaris barang",
	"Rekap ulang nota hari ini",
	"Bersihkan area usaha",
	"Update status promo di sosmed",
	"Cek kepuasan pelanggan",
}

func systemPrompt(ownerName, storeName string) string {
	return fmt.Sprintf(systemPromptFormat, ownerName, storeName)
}
