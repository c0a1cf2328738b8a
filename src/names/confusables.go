package names

// confusables maps look-alike code points to the Latin character they imitate.
// Keys are letters that survive NFKC unchanged; compatibility forms such as
// fullwidth or mathematical alphanumerics are already folded by NFKC and do not
// need an entry.
var confusables = map[rune]rune{
	// Cyrillic
	'\u0430': 'a', '\u0432': 'b', '\u0441': 'c', '\u0501': 'd', '\u0435': 'e', '\u0451': 'e',
	'\u04BB': 'h', '\u0456': 'i', '\u0457': 'i', '\u0458': 'j', '\u043A': 'k', '\u04CF': 'l',
	'\u043C': 'm', '\u043D': 'h', '\u043E': 'o', '\u0440': 'p', '\u051B': 'q', '\u0433': 'r',
	'\u0455': 's', '\u0442': 't', '\u0446': 'u', '\u0475': 'v', '\u051D': 'w', '\u0445': 'x',
	'\u0443': 'y', '\u04AF': 'y', '\u0437': '3', '\u044C': 'b', '\u044A': 'b', '\u043F': 'n',
	'\u0438': 'u', '\u043B': 'n', '\u0434': 'a', '\u050D': 'g', '\u0527': 'h', '\uA647': 'i',
	'\u0503': 'd', '\u0461': 'w', '\u0473': 'o', '\u04E9': 'o', '\u04AB': 'c', '\u049D': 'k',
	'\u049F': 'k', '\u04D3': 'a', '\u04D7': 'e', '\u04E7': 'o', '\u04F1': 'y', '\u04D1': 'a',
	// Greek
	'\u03B1': 'a', '\u03B2': 'b', '\u03B3': 'y', '\u03B4': 'd', '\u03B5': 'e', '\u03B6': 'z',
	'\u03B7': 'n', '\u03B9': 'i', '\u03BA': 'k', '\u03BD': 'v', '\u03BF': 'o', '\u03C1': 'p',
	'\u03C3': 'o', '\u03C4': 't', '\u03C5': 'u', '\u03C7': 'x', '\u03C9': 'w', '\u03F3': 'j',
	'\u03AC': 'a', '\u03AD': 'e', '\u03AE': 'n', '\u03AF': 'i', '\u03CC': 'o', '\u03CD': 'u',
	'\u03CE': 'w', '\u03CA': 'i', '\u03CB': 'u', '\u03C2': 'c',
	// Armenian
	'\u0585': 'o', '\u057D': 'u', '\u0581': 'g', '\u0570': 'h', '\u0578': 'n', '\u057C': 'n',
	'\u0566': 'q', '\u0561': 'w', '\u0565': 't', '\u056B': 'h', '\u056C': 'l',
	// Latin small capitals and IPA
	'\u1D00': 'a', '\u0299': 'b', '\u1D04': 'c', '\u1D05': 'd', '\u1D07': 'e', '\u0262': 'g',
	'\u029C': 'h', '\u026A': 'i', '\u1D0A': 'j', '\u1D0B': 'k', '\u029F': 'l', '\u1D0D': 'm',
	'\u0274': 'n', '\u1D0F': 'o', '\u1D18': 'p', '\u0280': 'r', '\uA731': 's', '\u1D1B': 't',
	'\u1D1C': 'u', '\u1D20': 'v', '\u1D21': 'w', '\u028F': 'y', '\u1D22': 'z', '\u0251': 'a',
	'\u0253': 'b', '\u0254': 'c', '\u0257': 'd', '\u025B': 'e', '\u0260': 'g', '\u0266': 'h',
	'\u0268': 'i', '\u029D': 'j', '\u026D': 'l', '\u0271': 'm', '\u0272': 'n', '\u0275': 'o',
	'\u02A0': 'q', '\u027D': 'r', '\u0282': 's', '\u0288': 't', '\u028B': 'v', '\u0290': 'z',
	'\u0131': 'i', '\u0261': 'g', '\u0269': 'i', '\u0237': 'j', '\u0138': 'k', '\u01BF': 'p',
	// Latin with diacritics
	'\u00E0': 'a', '\u00E1': 'a', '\u00E2': 'a', '\u00E3': 'a', '\u00E4': 'a', '\u00E5': 'a',
	'\u0101': 'a', '\u0103': 'a', '\u0105': 'a', '\u01CE': 'a', '\u0201': 'a', '\u0203': 'a',
	'\u0227': 'a', '\u1EA1': 'a', '\u1EA3': 'a', '\u0180': 'b', '\u00E7': 'c', '\u0107': 'c',
	'\u0109': 'c', '\u010B': 'c', '\u010D': 'c', '\u0188': 'c', '\u023C': 'c', '\u010F': 'd',
	'\u0111': 'd', '\u0256': 'd', '\u1E0D': 'd', '\u00E8': 'e', '\u00E9': 'e', '\u00EA': 'e',
	'\u00EB': 'e', '\u0113': 'e', '\u0115': 'e', '\u0117': 'e', '\u0119': 'e', '\u011B': 'e',
	'\u0205': 'e', '\u0207': 'e', '\u1EB9': 'e', '\u1EBB': 'e', '\u1EBD': 'e', '\u0192': 'f',
	'\u011D': 'g', '\u011F': 'g', '\u0121': 'g', '\u0123': 'g', '\u01E7': 'g', '\u01F5': 'g',
	'\u0125': 'h', '\u0127': 'h', '\u1E25': 'h', '\u00EC': 'i', '\u00ED': 'i', '\u00EE': 'i',
	'\u00EF': 'i', '\u0129': 'i', '\u012B': 'i', '\u012D': 'i', '\u012F': 'i', '\u01D0': 'i',
	'\u0209': 'i', '\u020B': 'i', '\u1ECB': 'i', '\u1EC9': 'i', '\u0135': 'j', '\u01F0': 'j',
	'\u0137': 'k', '\u01E9': 'k', '\u0199': 'k', '\u013A': 'l', '\u013C': 'l', '\u013E': 'l',
	'\u0142': 'l', '\u019A': 'l', '\u1E37': 'l', '\u1E3F': 'm', '\u1E41': 'm', '\u1E43': 'm',
	'\u00F1': 'n', '\u0144': 'n', '\u0146': 'n', '\u0148': 'n', '\u01F9': 'n', '\u1E45': 'n',
	'\u1E47': 'n', '\u00F2': 'o', '\u00F3': 'o', '\u00F4': 'o', '\u00F5': 'o', '\u00F6': 'o',
	'\u00F8': 'o', '\u014D': 'o', '\u014F': 'o', '\u0151': 'o', '\u01A1': 'o', '\u01D2': 'o',
	'\u020D': 'o', '\u020F': 'o', '\u022F': 'o', '\u1ECD': 'o', '\u1ECF': 'o', '\u1E55': 'p',
	'\u1E57': 'p', '\u01A5': 'p', '\u0155': 'r', '\u0157': 'r', '\u0159': 'r', '\u0211': 'r',
	'\u0213': 'r', '\u1E5B': 'r', '\u015B': 's', '\u015D': 's', '\u015F': 's', '\u0161': 's',
	'\u0219': 's', '\u1E61': 's', '\u1E63': 's', '\u0163': 't', '\u0165': 't', '\u0167': 't',
	'\u021B': 't', '\u1E6B': 't', '\u1E6D': 't', '\u00F9': 'u', '\u00FA': 'u', '\u00FB': 'u',
	'\u00FC': 'u', '\u0169': 'u', '\u016B': 'u', '\u016D': 'u', '\u016F': 'u', '\u0171': 'u',
	'\u0173': 'u', '\u01B0': 'u', '\u01D4': 'u', '\u0215': 'u', '\u0217': 'u', '\u1EE5': 'u',
	'\u1EE7': 'u', '\u1E7D': 'v', '\u1E7F': 'v', '\u0175': 'w', '\u1E81': 'w', '\u1E83': 'w',
	'\u1E85': 'w', '\u1E87': 'w', '\u1E89': 'w', '\u1E8B': 'x', '\u1E8D': 'x', '\u00FD': 'y',
	'\u00FF': 'y', '\u0177': 'y', '\u0233': 'y', '\u1E8F': 'y', '\u1EF3': 'y', '\u1EF5': 'y',
	'\u1EF7': 'y', '\u1EF9': 'y', '\u01B4': 'y', '\u017A': 'z', '\u017C': 'z', '\u017E': 'z',
	'\u01B6': 'z', '\u1E93': 'z', '\u0225': 'z',
	// Cherokee and Lisu capitals
	'\u13AA': 'a', '\u13F4': 'b', '\u13DF': 'c', '\u13A0': 'd', '\u13AC': 'e', '\u13F3': 'g',
	'\u13BB': 'h', '\u13A5': 'i', '\u13AB': 'j', '\u13E6': 'k', '\u13DE': 'l', '\u13B7': 'm',
	'\u13E2': 'p', '\u13A1': 'r', '\u13DA': 's', '\u13A2': 't', '\u13D9': 'v', '\u13B3': 'w',
	'\u13C3': 'z', '\uA4EE': 'a', '\uA4D0': 'b', '\uA4DA': 'c', '\uA4D3': 'd', '\uA4F0': 'e',
	'\uA4DD': 'f', '\uA4D6': 'g', '\uA4E7': 'h', '\uA4F2': 'i', '\uA4D9': 'j', '\uA4D7': 'k',
	'\uA4E1': 'l', '\uA4DF': 'm', '\uA4E0': 'n', '\uA4F3': 'o', '\uA4D1': 'p', '\uA4E3': 'r',
	'\uA4E2': 's', '\uA4D4': 't', '\uA4F4': 'u', '\uA4E6': 'v', '\uA4EA': 'w', '\uA4EB': 'x',
	'\uA4EC': 'y', '\uA4DC': 'z',
}

// Confusable returns the canonical Latin rune for r, if r is a known look-alike.
func Confusable(r rune) (rune, bool) {
	c, ok := confusables[r]
	return c, ok
}
