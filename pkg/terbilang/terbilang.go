// Package terbilang spells out whole rupiah amounts in upper-case Indonesian
// words, as printed on the "TERBILANG" line of an invoice.
package terbilang

// Overflow is returned for amounts of one billion and above.
const Overflow = "SANGAT BESAR"

var (
	units = [...]string{"", "SATU", "DUA", "TIGA", "EMPAT", "LIMA", "ENAM", "TUJUH", "DELAPAN", "SEMBILAN"}
	teens = [...]string{
		"SEPULUH", "SEBELAS", "DUA BELAS", "TIGA BELAS", "EMPAT BELAS",
		"LIMA BELAS", "ENAM BELAS", "TUJUH BELAS", "DELAPAN BELAS", "SEMBILAN BELAS",
	}
	tens = [...]string{
		"", "", "DUA PULUH", "TIGA PULUH", "EMPAT PULUH",
		"LIMA PULUH", "ENAM PULUH", "TUJUH PULUH", "DELAPAN PULUH", "SEMBILAN PULUH",
	}
)

// Convert returns n in words. Hundreds and thousands are always spelled with
// an explicit unit ("SATU RATUS", "SATU RIBU").
func Convert(n int64) string {
	switch {
	case n < 0:
		return "MINUS " + Convert(-n)
	case n == 0:
		return "NOL"
	case n < 10:
		return units[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		return join(tens[n/10], n%10)
	case n < 1_000:
		return join(units[n/100]+" RATUS", n%100)
	case n < 1_000_000:
		return join(Convert(n/1_000)+" RIBU", n%1_000)
	case n < 1_000_000_000:
		return join(Convert(n/1_000_000)+" JUTA", n%1_000_000)
	default:
		return Overflow
	}
}

func join(head string, rest int64) string {
	if rest == 0 {
		return head
	}
	return head + " " + Convert(rest)
}
