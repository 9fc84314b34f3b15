package dataset

// SampleSource is the Table.Source of the built-in sample.
const SampleSource = "sample"

var sampleColumns = []string{
	"Name", "Company", "Role", "Sector Focus", "Email", "Number", "Country", "Present in CRM",
}

var sampleRecords = [][]string{
	{"Yuko Kani", "JERA", "Global CEO", "Offshore wind, solar", "info@jera.co.jp", "81-3-3272-4631", "Japan", "Yes"},
	{"Tetsuya Suwabe", "Eurus Energy", "President & CEO", "Wind, Solar", "contact@eurus-energy.com", "81-3-5404-5000", "Japan", "No"},
	{"Yosuke Minami", "Invenia", "President & CEO", "Solar, Biomass", "https://invenia.jp/contact", "81-3-3516-5820", "Japan", "No"},
}

// Sample returns the built-in three-row prospect table used when no file is supplied.
// Each call returns a fresh copy.
func Sample() *Table {
	return newTable(sampleColumns, sampleRecords, SampleSource)
}
