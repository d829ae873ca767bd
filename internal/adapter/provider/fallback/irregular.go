package fallback

type form struct {
	lemma string
	pos   string
}

func verb(lemma string) form { return form{lemma: lemma, pos: posVerb} }

// irregular lists inflections no suffix rule can recover.
var irregular = map[string]form{
	"am": verb("be"), "is": verb("be"), "are": verb("be"), "was": verb("be"),
	"were": verb("be"), "been": verb("be"), "being": verb("be"),
	"has": verb("have"), "had": verb("have"), "having": verb("have"),
	"does": verb("do"), "did": verb("do"), "done": verb("do"),
	"goes": verb("go"), "went": verb("go"), "gone": verb("go"),
	"came": verb("come"), "saw": verb("see"), "seen": verb("see"),
	"got": verb("get"), "gotten": verb("get"), "made": verb("make"),
	"knew": verb("know"), "known": verb("know"), "thought": verb("think"),
	"took": verb("take"), "taken": verb("take"), "gave": verb("give"),
	"given": verb("give"), "found": verb("find"), "told": verb("tell"),
	"became": verb("become"), "left": verb("leave"), "felt": verb("feel"),
	"brought": verb("bring"), "began": verb("begin"), "begun": verb("begin"),
	"kept": verb("keep"), "held": verb("hold"), "wrote": verb("write"),
	"written": verb("write"), "writing": verb("write"), "stood": verb("stand"),
	"heard": verb("hear"), "meant": verb("mean"), "met": verb("meet"),
	"ran": verb("run"), "paid": verb("pay"), "sat": verb("sit"),
	"spoke": verb("speak"), "spoken": verb("speak"), "led": verb("lead"),
	"grew": verb("grow"), "grown": verb("grow"), "won": verb("win"),
	"bought": verb("buy"), "sent": verb("send"), "built": verb("build"),
	"fell": verb("fall"), "fallen": verb("fall"), "ate": verb("eat"),
	"eaten": verb("eat"), "drank": verb("drink"), "drunk": verb("drink"),
	"said": verb("say"), "says": verb("say"), "sold": verb("sell"),
	"taught": verb("teach"), "caught": verb("catch"), "slept": verb("sleep"),
	"swam": verb("swim"), "drove": verb("drive"), "driven": verb("drive"),
	"flew": verb("fly"), "flown": verb("fly"), "chose": verb("choose"),
	"chosen": verb("choose"), "forgot": verb("forget"), "forgotten": verb("forget"),
	"broke": verb("break"), "broken": verb("break"), "sang": verb("sing"),
	"sung": verb("sing"), "lost": verb("lose"), "spent": verb("spend"),
	"understood": verb("understand"), "lay": verb("lie"), "lain": verb("lie"),
	"put": verb("put"), "read": verb("read"), "cut": verb("cut"),
	"let": verb("let"), "set": verb("set"), "hit": verb("hit"),
	"shut": verb("shut"), "sought": verb("seek"), "fought": verb("fight"),
	"wore": verb("wear"), "worn": verb("wear"), "threw": verb("throw"),
	"thrown": verb("throw"), "drew": verb("draw"), "drawn": verb("draw"),
	"rode": verb("ride"), "ridden": verb("ride"), "rose": verb("rise"),
	"risen": verb("rise"), "hid": verb("hide"), "hidden": verb("hide"),
	"shook": verb("shake"), "shaken": verb("shake"), "stole": verb("steal"),
	"stolen": verb("steal"), "woke": verb("wake"), "woken": verb("wake"),
	"dying": verb("die"), "lying": verb("lie"), "tying": verb("tie"),
	"died": verb("die"), "lied": verb("lie"), "tied": verb("tie"),

	"better": {lemma: "good", pos: posAdj}, "best": {lemma: "good", pos: posAdj},
	"worse": {lemma: "bad", pos: posAdj}, "worst": {lemma: "bad", pos: posAdj},

	"men": {lemma: "man", pos: posNoun}, "women": {lemma: "woman", pos: posNoun},
	"children": {lemma: "child", pos: posNoun}, "people": {lemma: "person", pos: posNoun},
	"feet": {lemma: "foot", pos: posNoun}, "teeth": {lemma: "tooth", pos: posNoun},
	"mice": {lemma: "mouse", pos: posNoun}, "geese": {lemma: "goose", pos: posNoun},
	"lives": {lemma: "life", pos: posNoun}, "wives": {lemma: "wife", pos: posNoun},
	"knives": {lemma: "knife", pos: posNoun}, "leaves": {lemma: "leaf", pos: posNoun},
}

// invariant lists words the suffix rules would otherwise mangle.
var invariant = map[string]struct{}{
	"yes": {}, "this": {}, "his": {}, "its": {}, "us": {}, "as": {},
	"always": {}, "perhaps": {}, "news": {}, "series": {}, "species": {},
	"thing": {}, "nothing": {}, "something": {}, "anything": {}, "everything": {},
	"morning": {}, "evening": {}, "during": {}, "ceiling": {}, "king": {},
	"bed": {}, "red": {}, "hundred": {}, "sacred": {},
	"only": {}, "early": {}, "family": {}, "reply": {}, "apply": {}, "supply": {},
	"july": {}, "italy": {}, "holy": {}, "ugly": {}, "belly": {}, "jelly": {},
}
