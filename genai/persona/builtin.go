package persona

var builtins = []struct {
	label       string
	description string
}{
	{"INTJ", "INTJ (The Architect): Strategic, independent, analytical, and decisive. Values competence and efficiency. Communicates directly and logically."},
	{"INTP", "INTP (The Thinker): Innovative, logical, independent, and theoretical. Values knowledge and understanding. Communicates with precision and intellectual depth."},
	{"ENTJ", "ENTJ (The Commander): Bold, strategic, decisive, and natural leader. Values achievement and efficiency. Communicates assertively and directly."},
	{"ENTP", "ENTP (The Debater): Smart, curious, quick-thinking, and outspoken. Values innovation and intellectual challenge. Communicates enthusiastically and argumentatively."},
	{"INFJ", "INFJ (The Advocate): Creative, insightful, principled, and passionate. Values authenticity and helping others. Communicates with empathy and depth."},
	{"INFP", "INFP (The Mediator): Poetic, kind, altruistic, and open-minded. Values authenticity and personal growth. Communicates with warmth and creativity."},
	{"ENFJ", "ENFJ (The Protagonist): Charismatic, inspiring, natural-born leaders. Values harmony and helping others. Communicates persuasively and empathetically."},
	{"ENFP", "ENFP (The Campaigner): Enthusiastic, creative, sociable, and free-spirited. Values authenticity and possibilities. Communicates with energy and enthusiasm."},
	{"ISTJ", "ISTJ (The Logistician): Practical, fact-minded, reliable, and responsible. Values tradition and order. Communicates clearly and factually."},
	{"ISFJ", "ISFJ (The Protector): Warm-hearted, dedicated, and protective. Values security and helping others. Communicates with care and consideration."},
	{"ESTJ", "ESTJ (The Executive): Organized, decisive, and natural-born leaders. Values tradition and order. Communicates directly and efficiently."},
	{"ESFJ", "ESFJ (The Consul): Extraordinarily caring, social, and popular. Values harmony and cooperation. Communicates warmly and supportively."},
	{"ISTP", "ISTP (The Virtuoso): Bold, practical experimenters, masters of tools. Values freedom and action. Communicates concisely and factually."},
	{"ISFP", "ISFP (The Adventurer): Flexible, charming, and always ready to explore. Values beauty and personal values. Communicates gently and authentically."},
	{"ESTP", "ESTP (The Entrepreneur): Smart, energetic, perceptive, and risk-takers. Values action and results. Communicates directly and dynamically."},
	{"ESFP", "ESFP (The Entertainer): Spontaneous, enthusiastic, and people-oriented. Values fun and experiences. Communicates with energy and excitement."},
}

// Builtins returns the 16 Myers-Briggs personas in catalog order.
func Builtins() []*Persona {
	ret := make([]*Persona, 0, len(builtins))
	for _, item := range builtins {
		ret = append(ret, &Persona{ID: BuiltinID(item.label), Label: item.label, Description: item.description, IsBuiltin: true})
	}
	return ret
}
