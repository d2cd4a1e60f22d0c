package corpus

// The passage is the Gettysburg Address as a single line. Source lines are
// joined without separators, so several words run together at line joins
// ("forthupon", "dedicatedto"); the fixtures depend on that exact text.
const (
	passageOpening         = "Four score and seven years ago our fathers brought forth"
	passageOpeningMinified = "Fourscoreandsevenyearsagoourfathersbroughtforth"

	passageBody = "upon this continent, a new nation, conceived in Liberty, and dedicated" +
		"to the proposition that all men are created equal." +
		"Now we are engaged in a great civil war, testing whether that nation," +
		"or any nation so conceived and so dedicated, can long endure. We are" +
		"met on a great battle-field of that war. We have come to dedicate a" +
		"portion of that field, as a final resting place for those who here" +
		"gave their lives that that nation might live. It is altogether fitting" +
		"and proper that we should do this." +
		"But, in a larger sense, we can not dedicate—we can not consecrate—we" +
		"can not hallow—this ground. The brave men, living and dead, who" +
		"struggled here, have consecrated it, far above our poor power to add" +
		"or detract. The world will little note, nor long remember what we say" +
		"here, but it can never forget what they did here. It is for us the" +
		"living, rather, to be dedicated here to the unfinished work which" +
		"they who fought here have thus far so nobly advanced. It is rather" +
		"for us to be here dedicated to the great task remaining before" +
		"us—that from these honored dead we take increased devotion to that" +
		"cause for which they gave the last full measure of devotion—that we" +
		"here highly resolve that these dead shall not have died in vain—that" +
		"this nation, under God, shall have a new birth of freedom—and that" +
		"government of the people, by the people, for the people, shall not" +
		"perish from the earth."

	passageBodyMinified = "uponthiscontinent,anewnation,conceivedinLiberty,anddedicated" +
		"tothepropositionthatallmenarecreatedequal." +
		"Nowweareengagedinagreatcivilwar,testingwhetherthatnation," +
		"oranynationsoconceivedandsodedicated,canlongendure.Weare" +
		"metonagreatbattle-fieldofthatwar.Wehavecometodedicatea" +
		"portionofthatfield,asafinalrestingplaceforthosewhohere" +
		"gavetheirlivesthatthatnationmightlive.Itisaltogetherfitting" +
		"andproperthatweshoulddothis." +
		"But,inalargersense,wecannotdedicate—wecannotconsecrate—we" +
		"cannothallow—thisground.Thebravemen,livinganddead,who" +
		"struggledhere,haveconsecratedit,faraboveourpoorpowertoadd" +
		"ordetract.Theworldwilllittlenote,norlongrememberwhatwesay" +
		"here,butitcanneverforgetwhattheydidhere.Itisforusthe" +
		"living,rather,tobededicatedheretotheunfinishedworkwhich" +
		"theywhofoughtherehavethusfarsonoblyadvanced.Itisrather" +
		"forustobeherededicatedtothegreattaskremainingbefore" +
		"us—thatfromthesehonoreddeadwetakeincreaseddevotiontothat" +
		"causeforwhichtheygavethelastfullmeasureofdevotion—thatwe" +
		"herehighlyresolvethatthesedeadshallnothavediedinvain—that" +
		"thisnation,underGod,shallhaveanewbirthoffreedom—andthat" +
		"governmentofthepeople,bythepeople,forthepeople,shallnot" +
		"perishfromtheearth."
)

const (
	// Signature is the passage followed by the author's signature. The
	// opening line has no trailing space.
	Signature = passageOpening + passageBody + "—Abraham Lincoln"

	// NoSignature is the passage without a signature. Its opening line keeps
	// a trailing space, so it is one rune longer than it would otherwise be.
	NoSignature = passageOpening + " " + passageBody

	// SignatureMinified is Signature with all spaces removed.
	SignatureMinified = passageOpeningMinified + passageBodyMinified + "—AbrahamLincoln"

	// NoSignatureMinified is the passage with all spaces removed.
	NoSignatureMinified = passageOpeningMinified + passageBodyMinified
)
