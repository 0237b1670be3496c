package passphrase

var adverbs = []string{
	"boldly", "briskly", "calmly", "cheerfully", "cleverly", "closely",
	"deftly", "eagerly", "evenly", "fairly", "firmly", "gently",
	"gladly", "gracefully", "happily", "honestly", "kindly", "lightly",
	"loudly", "merrily", "neatly", "nimbly", "openly", "patiently",
	"politely", "promptly", "quickly", "quietly", "rapidly", "readily",
	"safely", "shyly", "silently", "smoothly", "softly", "steadily",
	"swiftly", "tenderly", "truly", "warmly", "wildly", "wisely",
}

var verbs = []string{
	"admire", "bake", "balance", "borrow", "build", "carry",
	"chase", "climb", "collect", "cook", "dance", "deliver",
	"draw", "explore", "follow", "gather", "greet", "guard",
	"hammer", "juggle", "kick", "launch", "lift", "mend",
	"paint", "plant", "polish", "pull", "push", "repair",
	"ride", "sail", "scrub", "sketch", "stack", "steer",
	"sweep", "throw", "trace", "visit", "wander", "wrap",
}

var nouns = []string{
	"anchor", "apple", "badger", "banjo", "basket", "beacon",
	"bridge", "bucket", "candle", "canyon", "castle", "comet",
	"compass", "cottage", "dolphin", "falcon", "feather", "garden",
	"glacier", "harbor", "helmet", "island", "kettle", "ladder",
	"lantern", "meadow", "mirror", "orchard", "otter", "paddle",
	"pebble", "pencil", "pillow", "rocket", "saddle", "tractor",
	"trumpet", "tunnel", "violin", "walrus", "window", "zephyr",
}
