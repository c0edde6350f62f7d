package tokenizer

import "github.com/nezumi0627/trend-analysis-aI/internal/models"

// Closed lexicons for POS lookup. Entries are matched longest-first
// inside Japanese script runs; English lookup is whole-word.

// jpParticles covers case, binding, adverbial, conjunctive and compound
// particles. Compound particles must sort before their prefixes, which
// longest-match handles.
var jpParticles = []string{
	// compound
	"については", "によって", "によると", "に関して", "において",
	"に対して", "にとって", "として", "ながら", "までに", "までの",
	"への", "からの", "けれども",
	// adverbial / conjunctive
	"ばかり", "だけ", "ほど", "など", "やら", "から", "まで", "のに", "ので",
	// case and binding
	"は", "が", "を", "の", "に", "へ", "と", "で", "も", "や", "か",
	// sentence-final
	"ね", "よ", "な", "わ", "ぞ", "ぜ", "さ",
}

// jpAuxiliaries covers polite, negative, passive/causative and modal
// auxiliary forms.
var jpAuxiliaries = []string{
	"ませんでした", "かもしれない", "ありません", "ください",
	"でしょう", "ましょう", "なかった", "られる", "させる", "られた",
	"させた", "そうだ", "ようだ", "らしい", "できる", "できた",
	"でした", "ました", "ません", "です", "ます", "ない", "れる",
	"れた", "せる", "せた", "まい", "だった", "である",
}

var jpPronouns = []string{
	"わたくし", "わたしたち", "われわれ", "あなたがた", "かのじょ",
	"わたし", "私たち", "私達", "僕たち", "僕達", "俺たち", "俺達",
	"あなた", "あんた", "お前", "彼女ら", "彼女達", "彼女", "彼ら",
	"これら", "それら", "あれら", "どなた", "自分", "私", "僕", "俺",
	"君", "彼", "誰", "これ", "それ", "あれ", "どれ", "ここ", "そこ",
	"あそこ", "どこ",
}

var jpConjunctions = []string{
	"それでは", "それから", "そのため", "ところで", "けれど",
	"しかし", "そして", "だから", "それで", "または", "つまり",
	"さらに", "ただし", "なお", "また", "でも",
}

var jpInterjections = []string{
	"おはようございます", "ありがとうございます", "こんにちは",
	"こんばんは", "ありがとう", "おはよう", "さようなら", "すみません",
	"いいえ", "はい", "ええ", "あら", "まあ", "おお", "ああ", "えっ",
}

var jpAdverbs = []string{
	"もちろん", "たくさん", "ゆっくり", "しっかり", "はっきり",
	"とても", "かなり", "すこし", "ちょっと", "たぶん", "きっと",
	"やはり", "やっぱり", "ずっと", "もっと", "すぐ", "まだ", "もう",
	"よく", "すでに", "いつも", "ときどき", "全然", "絶対",
}

// jpAdjectivalNouns are na-adjective stems (形容動詞語幹).
var jpAdjectivalNouns = []string{
	"きれい", "静か", "元気", "便利", "簡単", "有名", "大切", "特別",
	"大丈夫", "必要", "大変", "素敵", "豊か", "自由", "安全", "危険",
	"重要", "複雑",
}

// jpDeterminers are prenominals (連体詞).
var jpDeterminers = []string{
	"いわゆる", "あらゆる", "この", "その", "あの", "どの", "ある",
	"大きな", "小さな",
}

// jpVerbEndings are the dictionary-form final runes used to classify an
// unresolved span as a verb.
var jpVerbEndings = map[rune]bool{
	'う': true, 'く': true, 'ぐ': true, 'す': true, 'つ': true,
	'ぬ': true, 'ぶ': true, 'む': true, 'る': true,
}

// jpLexicons in lookup priority order; longest match wins across all of
// them, priority breaks length ties.
var jpLexicons = []struct {
	words []string
	pos   models.POS
}{
	{jpAuxiliaries, models.POSAuxiliaryVerb},
	{jpParticles, models.POSParticle},
	{jpPronouns, models.POSPronoun},
	{jpDeterminers, models.POSDeterminer},
	{jpConjunctions, models.POSConjunction},
	{jpInterjections, models.POSInterjection},
	{jpAdverbs, models.POSAdverb},
	{jpAdjectivalNouns, models.POSAdjectivalNoun},
}

// English function-word lexicons, keyed by lower-cased word.

var enDeterminers = wordSet(
	"a", "an", "the", "this", "that", "these", "those", "each",
	"every", "some", "any", "no", "another", "such",
)

var enPronouns = wordSet(
	"i", "you", "he", "she", "it", "we", "they", "me", "him", "her",
	"us", "them", "my", "your", "his", "its", "our", "their", "mine",
	"yours", "hers", "ours", "theirs", "myself", "yourself", "who",
	"whom", "whose", "what", "which", "someone", "anyone", "everyone",
	"nothing", "something",
)

// Prepositions map onto the particle category, the closest function
// class in the closed POS set.
var enPrepositions = wordSet(
	"in", "on", "at", "by", "for", "with", "to", "of", "from",
	"about", "into", "onto", "over", "under", "between", "among",
	"through", "during", "against", "without", "within", "across",
	"behind", "beyond", "after", "before", "up", "down", "off", "out",
)

var enConjunctions = wordSet(
	"and", "or", "but", "so", "because", "although", "though",
	"while", "if", "unless", "until", "whereas", "nor", "yet", "than",
	"whether", "since",
)

var enAuxiliaries = wordSet(
	"is", "am", "are", "was", "were", "be", "been", "being", "do",
	"does", "did", "have", "has", "had", "will", "would", "can",
	"could", "shall", "should", "may", "might", "must",
)

var enCommonVerbs = wordSet(
	"go", "goes", "went", "gone", "going", "make", "makes", "made",
	"making", "get", "gets", "got", "getting", "take", "takes",
	"took", "taken", "see", "sees", "saw", "seen", "come", "comes",
	"came", "run", "runs", "ran", "running", "use", "uses", "used",
	"know", "knows", "knew", "known", "think", "thinks", "thought",
	"say", "says", "said", "want", "wants", "wanted", "like", "likes",
	"liked", "need", "needs", "needed", "work", "works", "worked",
	"look", "looks", "looked", "find", "finds", "found", "give",
	"gives", "gave", "given", "tell", "told", "become", "became",
	"write", "wrote", "written", "read", "reads", "play", "plays",
	"played", "learn", "learns", "learned",
)

var enAdverbs = wordSet(
	"very", "really", "always", "never", "often", "sometimes",
	"usually", "now", "then", "here", "there", "today", "tomorrow",
	"yesterday", "soon", "already", "still", "just", "too", "also",
	"not", "again", "almost", "together", "well",
)

var enAdjectives = wordSet(
	"good", "great", "new", "old", "big", "small", "large", "long",
	"short", "high", "low", "bad", "best", "better", "worse",
	"important", "popular", "easy", "hard", "fast", "slow", "early",
	"late", "young", "hot", "cold", "strong", "happy", "simple",
	"nice", "beautiful", "interesting", "useful", "free", "open",
)

var enNouns = wordSet(
	"time", "people", "person", "year", "month", "week", "day",
	"way", "thing", "world", "life", "hand", "part", "place", "work",
	"word", "text", "code", "data", "news", "language", "computer",
	"program", "software", "internet", "music", "book", "water",
	"city", "country", "school", "house", "money", "idea", "trend",
	"keyword",
)

var enInterjections = wordSet(
	"oh", "wow", "hey", "hello", "hi", "ouch", "oops", "yeah",
	"yes", "hmm", "ah", "huh", "bye",
)

// enLexicons in lookup priority order.
var enLexicons = []struct {
	words map[string]bool
	pos   models.POS
}{
	{enAuxiliaries, models.POSAuxiliaryVerb},
	{enDeterminers, models.POSDeterminer},
	{enPronouns, models.POSPronoun},
	{enPrepositions, models.POSParticle},
	{enConjunctions, models.POSConjunction},
	{enInterjections, models.POSInterjection},
	{enCommonVerbs, models.POSVerb},
	{enAdverbs, models.POSAdverb},
	{enAdjectives, models.POSAdjective},
	{enNouns, models.POSNoun},
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
