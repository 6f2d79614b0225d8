package cli

var asciiLogo = ` ___  __  __  ___   ___  _      ___      _    ___
|_ _||  \/  ||   \ | _ )| |    / _ \    /_\  |   \
 | | | |\/| || |) || _ \| |__ | (_) |  / _ \ | |) |
|___||_|  |_||___/ |___/|____| \___/  /_/ \_\|___/`
