package agents

// defaultAgentMap is the built-in extension directory, used whenever no
// custom mapping file has been uploaded this session.
var defaultAgentMap = map[string]string{
	"100": "Agonna Powell",
	"104": "Gabriel Herrera",
	"106": "CBRE Prioritized",
	"107": "Christopher Treadaway",
	"108": "Aziza Salmon",
	"109": "Ian Raudes-Palacio",
	"110": "Nick Kipreos",
	"111": "Badr Goubi",
	"112": "Scott Rhodig",
	"113": "Christopher Knotts",
	"114": "Mark Rorer",
	"115": "James Chestnut",
	"116": "David Hernandez",
	"118": "Nick Biester",
	"119": "Isaiah Devoe",
	"121": "La Shawn George",
	"122": "Ropekia Gunn",
	"124": "Spare 124",
	"125": "Michael Henderson",
	"127": "Spare 127",
	"129": "Santo Nesbitt",
	"130": "Fire Transfer",
	"133": "Tyler Townsend",
	"135": "Darious Massey",
	"141": "Saindon Balunis",
	"142": "Jey Zamora",
	"145": "Logan Flowers",
	"146": "Ongela Helm",
	"162": "Frankie Robinson",
	"163": "Kailee Sesler",
	"164": "Melissa Lopez",
	"165": "Ali Eljayar",
	"166": "Terri Angerbauer",
	"302": "Yulia Bachman",
	"304": "SFR4CBRE Extension",
	"306": "Charles Giles",
	"308": "Jarrod Roberts",
	"311": "Babrah Koroma",
	"312": "Michael Roberts",
	"313": "Antony Wanja",
	"314": "Todd Mims",
	"315": "CBRE Transfer Numbers View",
	"316": "CBRE Transfer",
	"520": "Kathleen Caste",
	"540": "Jae Lim",
	"555": "CBRE Phase In",
	"560": "Henry Blankson",
	"580": "Chris Otto",
	"620": "Travis Webbe",
	"806": "ConventionalConveyor",
	"807": "xNew Main Test",
	"854": "Manager Critical",
	"888": "SFR Primary",
	"899": "Voicemail Access",
	"901": "Automation",
	"902": "Facility Issues",
	"903": "CBRE Returned Calls",
	"904": "CBRE Transfer Queue",
	"905": "Fire Transfer",
	"910": "GTSG Leadership",
	"999": "BaSE Main",
}
